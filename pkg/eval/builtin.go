package eval

var builtins = concat(numBuiltins, predBuiltins)

func concat(lists ...[]*Builtin) []*Builtin {
	var all []*Builtin
	for _, l := range lists {
		all = append(all, l...)
	}
	return all
}

// BuiltinDoc maps the name of each builtin to a one-line description, shown
// by the language server.
var BuiltinDoc = map[string]string{
	"+":   "(+ n...) returns the sum of its arguments, 0 if none.",
	"-":   "(- n) negates n; (- n m...) subtracts each m from n.",
	"*":   "(* n...) returns the product of its arguments, 1 if none.",
	"/":   "(/ n m...) divides n by each m, truncating towards zero.",
	"mod": "(mod n m) returns n modulo m, with the sign of m.",
	"abs": "(abs n) returns the absolute value of n.",
	"min": "(min n...) returns the smallest argument.",
	"max": "(max n...) returns the largest argument.",
	"=":   "(= a b...) reports whether all arguments are equal integers or booleans.",
	"<":   "(< a b...) reports whether the arguments are strictly increasing.",
	">":   "(> a b...) reports whether the arguments are strictly decreasing.",
	"not": "(not b) negates the boolean b.",
	"and": "(and b...) reports whether all arguments are true.",
	"or":  "(or b...) reports whether any argument is true.",
}

// SpecialDoc maps reserved words to descriptions of the forms they introduce.
var SpecialDoc = map[string]string{
	"define": "(define name value) binds name in the current frame; " +
		"(define (name params...) body...) defines a function.",
	"if":    "(if test then [else]) evaluates then when test is true, else otherwise.",
	"true":  "The boolean true.",
	"false": "The boolean false.",
}
