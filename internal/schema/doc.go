// Package schema parses the schema DSL into an immutable document
// model: models with fields and indexes, enums with variants, all with
// 1-based source lines for error reporting.
package schema
