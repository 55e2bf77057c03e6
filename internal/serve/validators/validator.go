package validators

type Validator struct {
	Errors map[string]any
	// keys keeps the order in which the errors were added.
	keys []string
}

func NewValidator() *Validator {
	return &Validator{
		Errors: make(map[string]any),
	}
}

func (v *Validator) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// CheckError is a convenience method for checking if an error is nil
func (v *Validator) CheckError(err error, key, message string) *Validator {
	if err != nil && message == "" {
		message = err.Error()
	}
	v.Check(err == nil, key, message)
	return v
}

// AddError keeps the first message registered for a key.
func (v *Validator) AddError(key, message string) {
	if _, ok := v.Errors[key]; ok {
		return
	}
	v.Errors[key] = message
	v.keys = append(v.keys, key)
}

// FirstError returns the message of the first error added, or an empty string when there are none.
func (v *Validator) FirstError() string {
	if len(v.keys) == 0 {
		return ""
	}
	message, _ := v.Errors[v.keys[0]].(string)
	return message
}
