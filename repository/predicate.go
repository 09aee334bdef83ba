package repository

import "gorm.io/gorm/clause"

// Predicate is a composable filter pushed down to the store as a WHERE
// expression. Build one with the helpers below and combine with And/Or/Not.
type Predicate = clause.Expression

func column(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

// Eq matches rows whose column equals value
func Eq(name string, value interface{}) Predicate {
	return clause.Eq{Column: column(name), Value: value}
}

// Neq matches rows whose column differs from value
func Neq(name string, value interface{}) Predicate {
	return clause.Neq{Column: column(name), Value: value}
}

// Gt matches rows whose column is greater than value
func Gt(name string, value interface{}) Predicate {
	return clause.Gt{Column: column(name), Value: value}
}

// Gte matches rows whose column is greater than or equal to value
func Gte(name string, value interface{}) Predicate {
	return clause.Gte{Column: column(name), Value: value}
}

// Lt matches rows whose column is less than value
func Lt(name string, value interface{}) Predicate {
	return clause.Lt{Column: column(name), Value: value}
}

// Lte matches rows whose column is less than or equal to value
func Lte(name string, value interface{}) Predicate {
	return clause.Lte{Column: column(name), Value: value}
}

// Like matches rows whose column matches the SQL LIKE pattern
func Like(name string, pattern string) Predicate {
	return clause.Like{Column: column(name), Value: pattern}
}

// In matches rows whose column is one of values. An empty list matches nothing.
func In[V any](name string, values []V) Predicate {
	return clause.IN{Column: column(name), Values: toInterfaces(values)}
}

// KeyEq matches the row with the given primary key
func KeyEq(key interface{}) Predicate {
	return clause.Eq{Column: clause.PrimaryColumn, Value: key}
}

// KeyNeq matches every row except the one with the given primary key
func KeyNeq(key interface{}) Predicate {
	return clause.Neq{Column: clause.PrimaryColumn, Value: key}
}

// KeyIn matches rows whose primary key is one of keys
func KeyIn[K any](keys []K) Predicate {
	return clause.IN{Column: clause.PrimaryColumn, Values: toInterfaces(keys)}
}

// And matches rows satisfying every predicate
func And(predicates ...Predicate) Predicate {
	return clause.And(predicates...)
}

// Or matches rows satisfying at least one predicate
func Or(predicates ...Predicate) Predicate {
	return clause.Or(predicates...)
}

// Not negates the conjunction of predicates
func Not(predicates ...Predicate) Predicate {
	return clause.Not(predicates...)
}

func toInterfaces[V any](values []V) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
