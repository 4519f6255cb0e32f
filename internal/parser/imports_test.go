package parser

import (
	"context"
	"reflect"
	"testing"
)

func extract(t *testing.T, content, path string) []string {
	t.Helper()
	return NewPrecise().ExtractImports(context.Background(), []byte(content), path)
}

func TestExtractPythonImports(t *testing.T) {
	imports := extract(t, `import os
import utils
from ..d import e
from pkg.sub import thing
`, "a/b/c.py")

	want := []string{"os", "utils", "..d", "e", "pkg.sub", "thing"}
	if !reflect.DeepEqual(imports, want) {
		t.Errorf("Expected %v, got %v", want, imports)
	}
}

func TestExtractJavaScriptImports(t *testing.T) {
	imports := extract(t, `import { helper } from './utils';
import fs from 'fs';
const lib = require("./lib");
`, "index.js")

	want := map[string]bool{"./utils": true, "fs": true, "./lib": true}
	if len(imports) != len(want) {
		t.Fatalf("Expected %d imports, got %v", len(want), imports)
	}
	for _, imp := range imports {
		if !want[imp] {
			t.Errorf("Unexpected import %q", imp)
		}
	}
}

func TestExtractGoImports(t *testing.T) {
	// Both single and grouped import declarations must be covered.
	imports := extract(t, `package main

import "fmt"

import (
	"os"
	"path/filepath"
)
`, "main.go")

	want := []string{"fmt", "os", "path/filepath"}
	if !reflect.DeepEqual(imports, want) {
		t.Errorf("Expected %v, got %v", want, imports)
	}
}

func TestExtractJavaImports(t *testing.T) {
	imports := extract(t, `package com.example;

import java.util.List;
import com.example.util.Helper;

public class Main {}
`, "Main.java")

	want := []string{"java.util.List", "com.example.util.Helper"}
	if !reflect.DeepEqual(imports, want) {
		t.Errorf("Expected %v, got %v", want, imports)
	}
}

func TestExtractRustImports(t *testing.T) {
	imports := extract(t, `use std::fmt;
use crate::geometry;

fn main() {}
`, "main.rs")

	if len(imports) != 2 {
		t.Fatalf("Expected 2 imports, got %v", imports)
	}
	if imports[0] != "std::fmt" {
		t.Errorf("Expected 'std::fmt', got %q", imports[0])
	}
}

func TestExtractCIncludes(t *testing.T) {
	imports := extract(t, `#include <stdio.h>
#include "local.h"

int main(void) { return 0; }
`, "main.c")

	want := []string{"stdio.h", "local.h"}
	if !reflect.DeepEqual(imports, want) {
		t.Errorf("Expected %v, got %v", want, imports)
	}
}

// Languages with a grammar but no import descriptors yield nothing rather than
// falling back to regex noise.
func TestExtractImportsUndescribedLanguage(t *testing.T) {
	imports := extract(t, `require 'json'

class Parser
end
`, "parser.rb")

	if imports != nil {
		t.Errorf("Expected no imports for ruby, got %v", imports)
	}
}

// Import extraction never depends on Parse succeeding; an unparseable-for-
// definitions file still yields its imports.
func TestExtractImportsIndependentOfParse(t *testing.T) {
	imports := extract(t, `import broken from './x'
class {{{{
`, "broken.js")

	found := false
	for _, imp := range imports {
		if imp == "./x" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected './x' even with malformed definitions, got %v", imports)
	}
}
