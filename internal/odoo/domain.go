package odoo

// Or is the prefix-notation OR operator for domain expressions
const Or = "|"

// Domain is an Odoo search domain: a flat list of conditions and prefix
// operators, e.g. [('type','=','product'), '|', (...), (...)].
type Domain []interface{}

// Cond builds a single (field, operator, value) condition
func Cond(field, operator string, value interface{}) []interface{} {
	return []interface{}{field, operator, value}
}

// NewDomain creates a domain from an initial set of conditions
func NewDomain(conds ...interface{}) Domain {
	domain := make(Domain, 0, len(conds))
	return append(domain, conds...)
}

// Append adds conditions or operators to the domain
func (d Domain) Append(items ...interface{}) Domain {
	return append(d, items...)
}

// AsArgs wraps the domain in the positional-argument form expected by
// search and search_count.
func (d Domain) AsArgs() []interface{} {
	return []interface{}{[]interface{}(d)}
}
