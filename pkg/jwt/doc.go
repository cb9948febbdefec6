// Package jwt signs and verifies HS256 JSON Web Tokens without third-party
// JWT dependencies, and provides HTTP middleware that puts typed claims into
// the request context.
//
//	svc, err := jwt.New(key, jwt.WithIssuer("authkit"), jwt.WithTTL(15*time.Minute))
//
//	type Claims struct {
//	    jwt.StandardClaims
//	    Verified bool `json:"otp_verified"`
//	}
//	token, err := svc.Generate(Claims{StandardClaims: svc.NewClaims("alice@example.com")})
//
//	var c Claims
//	err = svc.Parse(token, &c) // signature, alg, exp, nbf and iss are checked
//
//	r.With(jwt.Middleware[Claims](svc, jwt.MiddlewareConfig{})).Get("/me", h)
//	// in h: claims, ok := jwt.GetClaims[*Claims](r.Context())
package jwt
