// Package config loads compost.json or compost.yaml.
//
// # Configuration File Structure
//
//	{
//	  "prefix": "on-",
//	  "catalog": {
//	    "with": ["animationend"],
//	    "without": ["wheel", "scroll"]
//	  },
//	  "server": {
//	    "addr": "localhost:3000",
//	    "wsPath": "/ws",
//	    "readLimit": 65536,
//	    "forward": ["saved"]
//	  },
//	  "log": {"level": "debug"},
//	  "metrics": {"namespace": "compost"}
//	}
//
// The YAML form uses the same keys.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(cfg.EffectiveCatalog())
package config
