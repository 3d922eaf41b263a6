package platform

// mysqlReservedKeywords is a representative baseline of MySQL 8 reserved
// words - the ones likely to appear as column/table names in real schemas
// and thus worth auto-quoting. It is not the full grammar's reserved list.
var mysqlReservedKeywords = map[string]bool{}

func init() {
	for _, w := range []string{
		"ADD", "ALL", "ALTER", "AND", "AS", "ASC", "BEFORE", "BETWEEN", "BY",
		"CALL", "CASE", "CHANGE", "CHECK", "COLUMN", "CONDITION", "CONSTRAINT",
		"CREATE", "CROSS", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
		"CURRENT_USER", "CURSOR", "DATABASE", "DATABASES", "DEFAULT", "DELETE",
		"DESC", "DESCRIBE", "DISTINCT", "DROP", "ELSE", "ELSEIF", "EXISTS",
		"EXIT", "EXPLAIN", "FALSE", "FETCH", "FOR", "FOREIGN", "FROM", "GROUP",
		"GROUPING", "HAVING", "IF", "IGNORE", "IN", "INDEX", "INNER", "INSERT",
		"INTERVAL", "INTO", "IS", "JOIN", "KEY", "KEYS", "KILL", "LEADING",
		"LEFT", "LIKE", "LIMIT", "LOCK", "MATCH", "MODIFIES", "NATURAL", "NOT",
		"NULL", "ON", "OPTIMIZE", "OPTION", "OR", "ORDER", "OUTER", "PRIMARY",
		"RANGE", "READ", "READS", "REFERENCES", "REGEXP", "RENAME", "REPEAT",
		"REPLACE", "REQUIRE", "RESTRICT", "RETURN", "REVOKE", "RIGHT", "RLIKE",
		"ROW", "SCHEMA", "SCHEMAS", "SELECT", "SET", "SHOW", "SPATIAL", "TABLE",
		"THEN", "TO", "TRAILING", "TRIGGER", "TRUE", "UNION", "UNIQUE",
		"UNLOCK", "UPDATE", "USE", "USING", "VALUES", "VARYING", "WHEN",
		"WHERE", "WHILE", "WITH", "WRITE", "XOR",
	} {
		mysqlReservedKeywords[w] = true
	}
}
