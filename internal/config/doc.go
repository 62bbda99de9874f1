// Package config loads newtab.json, the server configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "newtab",
//	  "title": "New Tab",
//	  "page": "NEW_TAB",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "readTimeout": "10s",
//	    "writeTimeout": "10s"
//	  },
//	  "experiments": {
//	    "source": "s3://newtab-experiments/current.json",
//	    "region": "us-east-1"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "newtab",
//	    "path": "/metrics"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "newtab"
//	  },
//	  "logLevel": "info",
//	  "sites": [
//	    {"url": "https://foo.com", "title": "Foo", "source": "TOP_SITES"},
//	    {"url": "https://bar.com", "title": "Bar", "bookmarkGuid": "bm-1", "source": "BOOKMARKS"}
//	  ]
//	}
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    errors.PrintError(err)
//	    os.Exit(1)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
