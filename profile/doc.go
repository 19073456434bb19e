// Package profile writes pprof profiles for a single CLI invocation.
//
// A documentation run is short and sequential, so only a CPU profile covering
// the whole run and a heap snapshot taken at the end are supported. Register
// the flags with [Config.RegisterFlags], then bracket command execution with
// [Profiler.Start] and [Profiler.Stop]:
//
//	cfg := profile.NewConfig()
//	p := cfg.NewProfiler()
//
//	rootCmd := &cobra.Command{
//	    PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
//	        return p.Start()
//	    },
//	}
//
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	err := rootCmd.ExecuteContext(ctx)
//	stopErr := p.Stop()
package profile
