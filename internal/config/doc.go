// Package config provides configuration parsing for scene runtimes.
//
// The configuration is stored in scene.json or scene.yaml in the working
// directory. This package handles loading, saving, and validating it, and
// turns it into the values the runtime and CLI need.
//
// # Configuration File Structure
//
//	{
//	  "root": {
//	    "textSize": 16,
//	    "direction": "column"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "inspector": {
//	    "enabled": true,
//	    "host": "localhost",
//	    "port": 7070
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "scene"
//	  },
//	  "export": {
//	    "dir": "frames",
//	    "bucket": "",
//	    "prefix": "frames"
//	  },
//	  "runtime": {
//	    "passes": 0,
//	    "interval": "1s"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logger := cfg.Logger(os.Stderr)
//	rt := runtime.New(runtime.WithRootOptions(cfg.RootOptions()), runtime.WithLogger(logger))
package config
