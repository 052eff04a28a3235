package match

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

type graphqlOperationMatcher string

// GraphQLOperation matches GraphQL-over-HTTP requests that invoke the
// named operation. The body must be the standard JSON envelope with a
// query field; when the envelope carries an operationName it selects the
// operation, otherwise the document must define the operation itself.
func GraphQLOperation(name string) Matcher {
	return graphqlOperationMatcher(name)
}

func (m graphqlOperationMatcher) Matches(_ *http.Request, body []byte) bool {
	var envelope struct {
		Query         string `json:"query"`
		OperationName string `json:"operationName"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Query == "" {
		return false
	}
	doc, err := parser.ParseQuery(&ast.Source{Input: envelope.Query})
	if err != nil {
		return false
	}
	if envelope.OperationName != "" {
		return envelope.OperationName == string(m) && doc.Operations.ForName(envelope.OperationName) != nil
	}
	return doc.Operations.ForName(string(m)) != nil
}

func (m graphqlOperationMatcher) String() string {
	return fmt.Sprintf("graphql operation %q", string(m))
}
