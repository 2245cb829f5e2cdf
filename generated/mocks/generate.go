package mocks

// mockgen rules for generating mocks for exported interfaces (reflection mode).
//go:generate sh -c "mockgen -package=foundation $PACKAGE/foundation Runtime | genclean -pkg $PACKAGE/foundation -out $GOPATH/src/$PACKAGE/foundation/runtime_mock.go"
