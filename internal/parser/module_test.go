package parser

import (
	"testing"

	"tsxlower/internal/ast"
	"tsxlower/internal/diag"
)

func TestModuleItemShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"default and named", `import React, { useState as us, type FC } from "react";`,
			`(ImportDeclaration [(ImportDefaultSpecifier React) (ImportSpecifier useState us) (ImportSpecifier FC)] "react" [])`},
		{"namespace with attributes", `import * as data from "./d.json" with { type: "json" };`,
			`(ImportDeclaration [(ImportNamespaceSpecifier data)] "./d.json" [(ImportAttribute type "json")])`},
		{"side effect", `import "./styles.css";`, `(ImportDeclaration [] "./styles.css" [])`},
		{"default named type", `import type from "./t";`, `(ImportDeclaration [(ImportDefaultSpecifier type)] "./t" [])`},
		{"import require", `import fs = require("fs");`,
			`(TSImportEqualsDeclaration fs (TSExternalModuleReference "fs"))`},
		{"import alias", `import B = A.B;`, `(TSImportEqualsDeclaration B (TSQualifiedName A B))`},
		{"export default function", `export default function () {}`,
			`(ExportDefaultDeclaration (FunctionDeclaration [] [] (BlockStatement [])))`},
		{"export default expression", `export default App;`, `(ExportDefaultDeclaration App)`},
		{"export default class", `export default class extends Base {}`,
			`(ExportDefaultDeclaration (ClassDeclaration [] [] Base [] [] (ClassBody [])))`},
		{"export list from", `export { a as b, c } from "m";`,
			`(ExportNamedDeclaration [(ExportSpecifier a b) (ExportSpecifier c)] "m" [])`},
		{"export declaration", `export const x = 1;`,
			`(ExportNamedDeclaration (VariableDeclaration [(VariableDeclarator x 1)]) [] [])`},
		{"export star as", `export * as ns from "m";`, `(ExportAllDeclaration ns "m" [])`},
		{"export star", `export * from "m";`, `(ExportAllDeclaration "m" [])`},
		{"export assignment", `export = Foo;`, `(TSExportAssignment Foo)`},
		{"export as namespace", `export as namespace Lib;`, `(TSNamespaceExportDeclaration Lib)`},
		{"export interface", `export interface P { a: string }`,
			`(ExportNamedDeclaration (TSInterfaceDeclaration P [] [] (TSInterfaceBody [(TSPropertySignature [] a string)])) [] [])`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stmtShape(t, tt.input); got != tt.want {
				t.Errorf("shape mismatch for %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestTypeOnlyModuleItems(t *testing.T) {
	f := parseClean(t, `import type { A } from "a";
export type { B } from "b";
export type C = string;`)
	stmts := body(f)
	if got := stmts[0].(*ast.Opaque).Text("importKind"); got != "type" {
		t.Errorf("importKind = %q, want type", got)
	}
	if got := stmts[1].(*ast.Opaque).Text("exportKind"); got != "type" {
		t.Errorf("exportKind = %q, want type", got)
	}
	decl := stmts[2].(*ast.Opaque).Node("declaration")
	if !ast.Is(decl, ast.KindTSTypeAliasDeclaration) {
		t.Errorf("declaration kind = %v", decl)
	}
}

func TestInlineTypeSpecifier(t *testing.T) {
	f := parseClean(t, `import { type A, B } from "m";`)
	specs := body(f)[0].(*ast.Opaque).Nodes("specifiers")
	if got := specs[0].(*ast.Opaque).Text("importKind"); got != "type" {
		t.Errorf("first specifier importKind = %q", got)
	}
	if got := specs[1].(*ast.Opaque).Text("importKind"); got != "value" {
		t.Errorf("second specifier importKind = %q", got)
	}
}

func TestExportRequiresDeclaration(t *testing.T) {
	_, codes := parseWithCodes(t, "export x + 1;")
	if !hasCode(codes, diag.SynUnexpectedToken) {
		t.Fatalf("expected %s, got %v", diag.SynUnexpectedToken.ID(), codes)
	}
}

func TestMissingFromReports(t *testing.T) {
	_, codes := parseWithCodes(t, `import { a } "m";`)
	if !hasCode(codes, diag.SynUnexpectedToken) {
		t.Fatalf("expected %s, got %v", diag.SynUnexpectedToken.ID(), codes)
	}
}
