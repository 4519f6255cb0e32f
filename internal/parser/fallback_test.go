package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/dpolishuk/codegraph/internal/models"
)

func TestFallbackParsePython(t *testing.T) {
	content := []byte(`class Foo:
    pass

def bar():
    return 1
`)

	entities := NewFallback().Parse(context.Background(), content, "test.py")

	byName := make(map[string]models.CodeEntity)
	for _, e := range entities {
		byName[e.Name] = e
	}

	foo, ok := byName["Foo"]
	if !ok {
		t.Fatal("Foo not found")
	}
	if foo.Kind != models.KindClass {
		t.Errorf("Expected kind 'class', got %q", foo.Kind)
	}
	if foo.ID != "test.py::Foo" {
		t.Errorf("Expected id 'test.py::Foo', got %q", foo.ID)
	}

	bar, ok := byName["bar"]
	if !ok {
		t.Fatal("bar not found")
	}
	if bar.Kind != models.KindFunction {
		t.Errorf("Expected kind 'function', got %q", bar.Kind)
	}
	if bar.Location == nil {
		t.Fatal("Expected a match-offset location")
	}
	if int(bar.Location.StartByte) >= len(content) {
		t.Errorf("Offset %d out of range", bar.Location.StartByte)
	}
	// Fallback locations carry only the offset.
	if bar.Location.EndByte != 0 || bar.Location.EndLine != 0 {
		t.Error("Fallback locations must not claim an end boundary")
	}
}

func TestFallbackParseKeywordVariants(t *testing.T) {
	content := []byte(`struct Point { int x; };
enum Color { RED };
fn render() {}
interface Shape {}
type Alias = int
`)

	entities := NewFallback().Parse(context.Background(), content, "mixed.txt")

	wantKinds := map[string]models.EntityKind{
		"Point":  models.KindStruct,
		"Color":  models.KindEnum,
		"render": models.KindFunction,
		"Shape":  models.KindInterface,
		"Alias":  models.KindType,
	}

	got := make(map[string]models.EntityKind)
	for _, e := range entities {
		got[e.Name] = e.Kind
	}
	for name, kind := range wantKinds {
		if got[name] != kind {
			t.Errorf("%s: expected kind %q, got %q", name, kind, got[name])
		}
	}
}

func TestFallbackImportIgnoresGroupedParen(t *testing.T) {
	content := []byte(`package main

import (
	"fmt"
	"os"
)

reimport x
`)

	imports := NewFallback().ExtractImports(context.Background(), content, "main.go")

	for _, imp := range imports {
		if strings.ContainsAny(imp, "()") {
			t.Errorf("Captured parenthesis token %q", imp)
		}
		if imp == "x" {
			t.Error("Matched 'import' inside another word")
		}
	}
}

func TestFallbackExtractImports(t *testing.T) {
	content := []byte(`import os
from utils import helper
const x = require("./lib");
#include <stdio.h>
use std::fmt;
`)

	imports := NewFallback().ExtractImports(context.Background(), content, "any.txt")

	want := map[string]bool{
		"os":       true,
		"utils":    true,
		"./lib":    true,
		"stdio.h":  true,
		"std::fmt": true,
	}
	got := make(map[string]bool)
	for _, imp := range imports {
		got[imp] = true
	}
	for imp := range want {
		if !got[imp] {
			t.Errorf("Expected import %q, got %v", imp, imports)
		}
	}
}
