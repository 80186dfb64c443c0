package textgen

import (
	"go.uber.org/fx"
)

// FXModule wires the description generator into Fx.
var FXModule = fx.Module("textgen",
	fx.Provide(
		NewConfig,
		NewGenerator,
	),
)
