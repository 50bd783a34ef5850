// Package unitofwork provides the scoped transactional boundary described
// in spec.md §4.8: it opens a database transaction on entry, binds it to
// the context so repository calls inside the scope participate in it, and
// commits on a nil return or rolls back otherwise. Nested calls (a use case
// invoking another use case) reuse the outer transaction instead of opening
// a second one.
package unitofwork
