package domain

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// GetFunctionName describes a caller on the stack as "file.go:line pkg.Func". A skip of 1 is the
// function calling GetFunctionName.
func GetFunctionName(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown caller"
	}

	name := "?"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		// drop the module path, keep package and function
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
	}
	return fmt.Sprintf("%s:%d %s", filepath.Base(file), line, name)
}
