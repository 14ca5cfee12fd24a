// Package shape describes the type of value the parsefrom command parses.
//
// A shape is written as a small type expression:
//
//	u8 u16 u32 u64 i8 i16 i32 i64   decimal integers
//	f32 f64 bigint decimal          other numbers
//	bool char byte                  booleans, code points and raw bytes
//	[]S                             line separated sequence of S
//	[N]S                            exactly N comma separated values of S
//	set[S]                          line separated set of S
//	map[K]V                         line separated K=V entries
//
// Set elements and map keys must be comparable scalars. Scalar names come
// from a Registry, so host programs can add their own types next to the
// built-in ones.
//
// The expression itself is parsed with package combinator, and shapes turn
// into parsers built from the generic containers of package parsefrom.
package shape
