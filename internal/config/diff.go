package config

// Diff returns the dotted names of the settings that differ between old and
// next, in file order. It returns nil when either config is nil.
func Diff(old, next *Config) []string {
	if old == nil || next == nil {
		return nil
	}

	var changed []string
	check := func(name string, differs bool) {
		if differs {
			changed = append(changed, name)
		}
	}

	check("version", old.Version != next.Version)
	check("server.host", old.Server.Host != next.Server.Host)
	check("server.http_port", old.Server.HTTPPort != next.Server.HTTPPort)
	check("server.grpc_port", old.Server.GRPCPort != next.Server.GRPCPort)
	check("server.read_timeout", old.Server.ReadTimeout != next.Server.ReadTimeout)
	check("server.write_timeout", old.Server.WriteTimeout != next.Server.WriteTimeout)
	check("storage.models_dir", old.Storage.ModelsDir != next.Storage.ModelsDir)
	check("log.file", old.Log.File != next.Log.File)
	check("log.to_file", old.Log.ToFile != next.Log.ToFile)

	return changed
}
