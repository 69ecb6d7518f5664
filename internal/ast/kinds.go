package ast

// Opaque kind labels produced by the parser and the lowering pass.
const (
	KindProgram = "Program"

	// statements
	KindExpressionStatement = "ExpressionStatement"
	KindVariableDeclaration = "VariableDeclaration"
	KindVariableDeclarator  = "VariableDeclarator"
	KindFunctionDeclaration = "FunctionDeclaration"
	KindClassDeclaration    = "ClassDeclaration"
	KindClassBody           = "ClassBody"
	KindMethodDefinition    = "MethodDefinition"
	KindPropertyDefinition  = "PropertyDefinition"
	KindStaticBlock         = "StaticBlock"
	KindIfStatement         = "IfStatement"
	KindForStatement        = "ForStatement"
	KindForInStatement      = "ForInStatement"
	KindForOfStatement      = "ForOfStatement"
	KindWhileStatement      = "WhileStatement"
	KindDoWhileStatement    = "DoWhileStatement"
	KindSwitchStatement     = "SwitchStatement"
	KindSwitchCase          = "SwitchCase"
	KindTryStatement        = "TryStatement"
	KindCatchClause         = "CatchClause"
	KindReturnStatement     = "ReturnStatement"
	KindThrowStatement      = "ThrowStatement"
	KindBreakStatement      = "BreakStatement"
	KindContinueStatement   = "ContinueStatement"
	KindLabeledStatement    = "LabeledStatement"
	KindBlockStatement      = "BlockStatement"
	KindEmptyStatement      = "EmptyStatement"
	KindDebuggerStatement   = "DebuggerStatement"
	KindWithStatement       = "WithStatement"

	// modules
	KindImportDeclaration         = "ImportDeclaration"
	KindImportSpecifier           = "ImportSpecifier"
	KindImportDefaultSpecifier    = "ImportDefaultSpecifier"
	KindImportNamespaceSpecifier  = "ImportNamespaceSpecifier"
	KindImportAttribute           = "ImportAttribute"
	KindExportNamedDeclaration    = "ExportNamedDeclaration"
	KindExportSpecifier           = "ExportSpecifier"
	KindExportDefaultDeclaration  = "ExportDefaultDeclaration"
	KindExportAllDeclaration      = "ExportAllDeclaration"
	KindTSExportAssignment        = "TSExportAssignment"
	KindTSImportEqualsDeclaration = "TSImportEqualsDeclaration"
	KindTSExternalModuleReference = "TSExternalModuleReference"
	KindTSNamespaceExport         = "TSNamespaceExportDeclaration"

	// TypeScript declarations
	KindTSInterfaceDeclaration = "TSInterfaceDeclaration"
	KindTSInterfaceBody        = "TSInterfaceBody"
	KindTSInterfaceHeritage    = "TSInterfaceHeritage"
	KindTSTypeAliasDeclaration = "TSTypeAliasDeclaration"
	KindTSEnumDeclaration      = "TSEnumDeclaration"
	KindTSEnumMember           = "TSEnumMember"
	KindTSModuleDeclaration    = "TSModuleDeclaration"
	KindTSModuleBlock          = "TSModuleBlock"
	KindTSParameterProperty    = "TSParameterProperty"
	KindTSIndexSignature       = "TSIndexSignature"
	KindDecorator              = "Decorator"

	// types
	KindTSKeywordType           = "TSKeywordType"
	KindTSTypeReference         = "TSTypeReference"
	KindTSQualifiedName         = "TSQualifiedName"
	KindTSArrayType             = "TSArrayType"
	KindTSTupleType             = "TSTupleType"
	KindTSNamedTupleMember      = "TSNamedTupleMember"
	KindTSOptionalType          = "TSOptionalType"
	KindTSRestType              = "TSRestType"
	KindTSUnionType             = "TSUnionType"
	KindTSIntersectionType      = "TSIntersectionType"
	KindTSFunctionType          = "TSFunctionType"
	KindTSConstructorType       = "TSConstructorType"
	KindTSTypeLiteral           = "TSTypeLiteral"
	KindTSPropertySignature     = "TSPropertySignature"
	KindTSMethodSignature       = "TSMethodSignature"
	KindTSCallSignature         = "TSCallSignatureDeclaration"
	KindTSConstructSignature    = "TSConstructSignatureDeclaration"
	KindTSLiteralType           = "TSLiteralType"
	KindTSTypeQuery             = "TSTypeQuery"
	KindTSTypeOperator          = "TSTypeOperator"
	KindTSIndexedAccessType     = "TSIndexedAccessType"
	KindTSConditionalType       = "TSConditionalType"
	KindTSInferType             = "TSInferType"
	KindTSParenthesizedType     = "TSParenthesizedType"
	KindTSMappedType            = "TSMappedType"
	KindTSTypePredicate         = "TSTypePredicate"
	KindTSImportType            = "TSImportType"
	KindTSTemplateLiteralType   = "TSTemplateLiteralType"
	KindTSThisType              = "TSThisType"
	KindTSTypeParameter         = "TSTypeParameter"

	// expressions
	KindIdentifier               = "Identifier"
	KindPrivateIdentifier        = "PrivateIdentifier"
	KindThisExpression           = "ThisExpression"
	KindSuper                    = "Super"
	KindStringLiteral            = "StringLiteral"
	KindNumericLiteral           = "NumericLiteral"
	KindBigIntLiteral            = "BigIntLiteral"
	KindBooleanLiteral           = "BooleanLiteral"
	KindNullLiteral              = "NullLiteral"
	KindRegExpLiteral            = "RegExpLiteral"
	KindTemplateLiteral          = "TemplateLiteral"
	KindTemplateElement          = "TemplateElement"
	KindTaggedTemplateExpression = "TaggedTemplateExpression"
	KindArrayExpression          = "ArrayExpression"
	KindObjectExpression         = "ObjectExpression"
	KindProperty                 = "Property"
	KindSpreadElement            = "SpreadElement"
	KindFunctionExpression       = "FunctionExpression"
	KindArrowFunctionExpression  = "ArrowFunctionExpression"
	KindClassExpression          = "ClassExpression"
	KindUnaryExpression          = "UnaryExpression"
	KindUpdateExpression         = "UpdateExpression"
	KindBinaryExpression         = "BinaryExpression"
	KindLogicalExpression        = "LogicalExpression"
	KindAssignmentExpression     = "AssignmentExpression"
	KindConditionalExpression    = "ConditionalExpression"
	KindCallExpression           = "CallExpression"
	KindNewExpression            = "NewExpression"
	KindMemberExpression         = "MemberExpression"
	KindSequenceExpression       = "SequenceExpression"
	KindParenthesizedExpression  = "ParenthesizedExpression"
	KindAwaitExpression          = "AwaitExpression"
	KindYieldExpression          = "YieldExpression"
	KindMetaProperty             = "MetaProperty"
	KindImportExpression         = "ImportExpression"
	KindTSAsExpression           = "TSAsExpression"
	KindTSSatisfiesExpression    = "TSSatisfiesExpression"
	KindTSNonNullExpression      = "TSNonNullExpression"
	KindTSInstantiation          = "TSInstantiationExpression"

	// patterns
	KindObjectPattern     = "ObjectPattern"
	KindArrayPattern      = "ArrayPattern"
	KindAssignmentPattern = "AssignmentPattern"
	KindRestElement       = "RestElement"

	// KindCastMarker is produced by lowering only: expression as type.
	KindCastMarker = "CastMarker"
)

// OpaqueKinds lists every opaque kind label the parser or the lowering pass
// can produce.
func OpaqueKinds() []string {
	return []string{
		KindProgram,
		KindExpressionStatement,
		KindVariableDeclaration,
		KindVariableDeclarator,
		KindFunctionDeclaration,
		KindClassDeclaration,
		KindClassBody,
		KindMethodDefinition,
		KindPropertyDefinition,
		KindStaticBlock,
		KindIfStatement,
		KindForStatement,
		KindForInStatement,
		KindForOfStatement,
		KindWhileStatement,
		KindDoWhileStatement,
		KindSwitchStatement,
		KindSwitchCase,
		KindTryStatement,
		KindCatchClause,
		KindReturnStatement,
		KindThrowStatement,
		KindBreakStatement,
		KindContinueStatement,
		KindLabeledStatement,
		KindBlockStatement,
		KindEmptyStatement,
		KindDebuggerStatement,
		KindWithStatement,
		KindImportDeclaration,
		KindImportSpecifier,
		KindImportDefaultSpecifier,
		KindImportNamespaceSpecifier,
		KindImportAttribute,
		KindExportNamedDeclaration,
		KindExportSpecifier,
		KindExportDefaultDeclaration,
		KindExportAllDeclaration,
		KindTSExportAssignment,
		KindTSImportEqualsDeclaration,
		KindTSExternalModuleReference,
		KindTSNamespaceExport,
		KindTSInterfaceDeclaration,
		KindTSInterfaceBody,
		KindTSInterfaceHeritage,
		KindTSTypeAliasDeclaration,
		KindTSEnumDeclaration,
		KindTSEnumMember,
		KindTSModuleDeclaration,
		KindTSModuleBlock,
		KindTSParameterProperty,
		KindTSIndexSignature,
		KindDecorator,
		KindTSKeywordType,
		KindTSTypeReference,
		KindTSQualifiedName,
		KindTSArrayType,
		KindTSTupleType,
		KindTSNamedTupleMember,
		KindTSOptionalType,
		KindTSRestType,
		KindTSUnionType,
		KindTSIntersectionType,
		KindTSFunctionType,
		KindTSConstructorType,
		KindTSTypeLiteral,
		KindTSPropertySignature,
		KindTSMethodSignature,
		KindTSCallSignature,
		KindTSConstructSignature,
		KindTSLiteralType,
		KindTSTypeQuery,
		KindTSTypeOperator,
		KindTSIndexedAccessType,
		KindTSConditionalType,
		KindTSInferType,
		KindTSParenthesizedType,
		KindTSMappedType,
		KindTSTypePredicate,
		KindTSImportType,
		KindTSTemplateLiteralType,
		KindTSThisType,
		KindTSTypeParameter,
		KindIdentifier,
		KindPrivateIdentifier,
		KindThisExpression,
		KindSuper,
		KindStringLiteral,
		KindNumericLiteral,
		KindBigIntLiteral,
		KindBooleanLiteral,
		KindNullLiteral,
		KindRegExpLiteral,
		KindTemplateLiteral,
		KindTemplateElement,
		KindTaggedTemplateExpression,
		KindArrayExpression,
		KindObjectExpression,
		KindProperty,
		KindSpreadElement,
		KindFunctionExpression,
		KindArrowFunctionExpression,
		KindClassExpression,
		KindUnaryExpression,
		KindUpdateExpression,
		KindBinaryExpression,
		KindLogicalExpression,
		KindAssignmentExpression,
		KindConditionalExpression,
		KindCallExpression,
		KindNewExpression,
		KindMemberExpression,
		KindSequenceExpression,
		KindParenthesizedExpression,
		KindAwaitExpression,
		KindYieldExpression,
		KindMetaProperty,
		KindImportExpression,
		KindTSAsExpression,
		KindTSSatisfiesExpression,
		KindTSNonNullExpression,
		KindTSInstantiation,
		KindObjectPattern,
		KindArrayPattern,
		KindAssignmentPattern,
		KindRestElement,
		KindCastMarker,
	}
}
