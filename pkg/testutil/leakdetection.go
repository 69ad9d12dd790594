package testutil

import (
	"go.uber.org/goleak"
)

// GoLeakIgnores lists goroutines that outlive a test without being a leak.
func GoLeakIgnores() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreTopFunction("github.com/golang/glog.(*loggingT).flushDaemon"),
		goleak.IgnoreAnyFunction("github.com/spf13/viper.(*Viper).WatchConfig.func1"),
	}
}
