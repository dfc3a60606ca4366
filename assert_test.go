package main

import (
	"fmt"
	"reflect"
)

func assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf("assert failed: "+format, args...))
	}
}

func assertEquals(expect, result interface{}) {
	assert(reflect.DeepEqual(expect, result), "expect %v, but got %v", expect, result)
}
