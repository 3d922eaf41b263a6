package platform

// postgresReservedKeywords baselines PostgreSQL 14's reserved and
// unreserved-but-column-name-restricted word list, the ones likely to
// collide with real column/table names.
var postgresReservedKeywords = map[string]bool{}

func init() {
	for _, w := range []string{
		"ALL", "ANALYSE", "ANALYZE", "AND", "ANY", "ARRAY", "AS", "ASC",
		"ASYMMETRIC", "AUTHORIZATION", "BINARY", "BOTH", "CASE", "CAST",
		"CHECK", "COLLATE", "COLLATION", "COLUMN", "CONCURRENTLY",
		"CONSTRAINT", "CREATE", "CROSS", "CURRENT_CATALOG", "CURRENT_DATE",
		"CURRENT_ROLE", "CURRENT_SCHEMA", "CURRENT_TIME", "CURRENT_TIMESTAMP",
		"CURRENT_USER", "DEFAULT", "DEFERRABLE", "DESC", "DISTINCT", "DO",
		"ELSE", "END", "EXCEPT", "FALSE", "FETCH", "FOR", "FOREIGN", "FREEZE",
		"FROM", "FULL", "GRANT", "GROUP", "HAVING", "ILIKE", "IN", "INITIALLY",
		"INNER", "INTERSECT", "INTO", "IS", "ISNULL", "JOIN", "LATERAL",
		"LEADING", "LEFT", "LIKE", "LIMIT", "LOCALTIME", "LOCALTIMESTAMP",
		"NATURAL", "NOT", "NOTNULL", "NULL", "OFFSET", "ON", "ONLY", "OR",
		"ORDER", "OUTER", "OVERLAPS", "PLACING", "PRIMARY", "REFERENCES",
		"RETURNING", "RIGHT", "SELECT", "SESSION_USER", "SIMILAR", "SOME",
		"SYMMETRIC", "TABLE", "TABLESAMPLE", "THEN", "TO", "TRAILING", "TRUE",
		"UNION", "UNIQUE", "USER", "USING", "VARIADIC", "VERBOSE", "WHEN",
		"WHERE", "WINDOW", "WITH",
		// Identifiers that are only unreserved-in-some-contexts but are
		// nearly always intended as keywords when they show up as a column
		// name ("order" being the canonical example).
		"ORDER", "GROUP", "TABLE", "CHECK", "DEFAULT", "COLUMN",
	} {
		postgresReservedKeywords[w] = true
	}
}
