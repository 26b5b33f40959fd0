// Package testutil holds helpers shared by linkwatch tests.
package testutil

import "go.uber.org/zap"

// Logger returns a development logger. Construction failures panic.
func Logger() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic("testutil.Logger: " + err.Error())
	}
	return l
}
