// Package autoload initializes the global logger from LOG_* environment
// variables as a side effect of import:
//
//	import _ "github.com/tanpawarit/kopibot/pkg/logger/autoload"
package autoload

import (
	configx "github.com/tanpawarit/kopibot/pkg/config"
	logx "github.com/tanpawarit/kopibot/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
