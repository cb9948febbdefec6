// Package validator provides composable validation rules. Each constructor
// returns a Rule bound to a field name and value; Apply evaluates all rules
// and returns ValidationErrors listing every failure, so clients see all
// problems at once.
//
//	err := validator.Apply(
//	    validator.ValidEmail("email", email),
//	    validator.StrongPassword("password", pw, validator.DefaultPasswordStrength()),
//	    validator.NotCommonPassword("password", pw),
//	)
//	if validator.IsValidationError(err) {
//	    // 422 with validator.ExtractValidationErrors(err)
//	}
package validator
