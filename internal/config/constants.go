package config

// Built-in type names as they appear in source annotations.
const (
	IntTypeName       = "int"
	FloatTypeName     = "float"
	BoolTypeName      = "bool"
	StrTypeName       = "str"
	BytesTypeName     = "bytes"
	ByteArrayTypeName = "bytearray"
	NoneTypeName      = "None"
	ListTypeName      = "list"
	DictTypeName      = "dict"
	SetTypeName       = "set"
)

// Built-in class and function names.
const (
	ExceptionRootName = "Exception"
	RangeFuncName     = "range"
	LenFuncName       = "len"
	PrintFuncName     = "print"
	SuperFuncName     = "super"
)

// Magic-method slot names.
const (
	InitMethodName    = "__init__"
	StrMethodName     = "__str__"
	ReprMethodName    = "__repr__"
	LenMethodName     = "__len__"
	GetItemMethodName = "__getitem__"
	SetItemMethodName = "__setitem__"
)

// Container mutator method names that drive element-type inference.
const (
	AppendMethodName = "append"
	AddMethodName    = "add"
)

// InitialCapacity is the allocated capacity of an empty-constructed list
// or bytearray. Appends double it once the logical length reaches it, so
// the first reallocation happens on the 9th append.
const InitialCapacity = 8

// BuiltinModuleName qualifies classes the compiler itself registers
// (Exception, str, range) as opposed to user modules.
const BuiltinModuleName = "__builtin__"
