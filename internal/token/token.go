package token

// TokenType identifies the syntactic kind a token was produced for.
type TokenType string

const (
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	STRING TokenType = "STRING"
	TRUE   TokenType = "TRUE"
	FALSE  TokenType = "FALSE"
	NIL    TokenType = "NIL"

	FUNC   TokenType = "FUNC"
	LAMBDA TokenType = "LAMBDA"
	IF     TokenType = "IF"
	TRY    TokenType = "TRY"
	MATCH  TokenType = "MATCH"
	WITH   TokenType = "WITH"
	FOR    TokenType = "FOR"
	WHILE  TokenType = "WHILE"
	PASS   TokenType = "PASS"
	RETURN TokenType = "RETURN"
	RAISE  TokenType = "RAISE"
	ASSIGN TokenType = "ASSIGN"
)

// Token carries the lexeme and source position of a syntactic element.
// Trees handed to the rewriter come from an external producer; tokens
// exist so diagnostics can point back at the original source.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Column  int
}
