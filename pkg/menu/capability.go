package menu

// Translator turns a label into its localized form.
type Translator interface {
	Translate(text string) string
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(text string) string

// Translate implements Translator.
func (f TranslatorFunc) Translate(text string) string { return f(text) }

// Condition gates the display of an item. It is evaluated on every call to
// IsHidden, so it may depend on state that changes between requests.
type Condition interface {
	IsOK() bool
}

// ConditionFunc adapts a function to the Condition interface.
type ConditionFunc func() bool

// IsOK implements Condition.
func (f ConditionFunc) IsOK() bool { return f() }
