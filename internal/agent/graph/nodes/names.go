package nodes

const (
	NodeInputConverter = "input_converter"
	NodeContextBuilder = "context_builder"
	NodeGenerator      = "generator"
	NodeValidator      = "validator"
	NodeFallback       = "fallback"
	NodeFinalizer      = "finalizer"
)
