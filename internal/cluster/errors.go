package cluster

import "fmt"

// ConfigError reports one invalid cluster entry found at load time. A bad
// entry skips that cluster only; the rest of the config still loads.
type ConfigError struct {
	Cluster string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cluster %q: %s", e.Cluster, e.Reason)
}

// UnknownClusterError reports a lookup or switch request for a name the
// registry does not hold.
type UnknownClusterError struct {
	Name string
}

func (e *UnknownClusterError) Error() string {
	return fmt.Sprintf("unknown cluster %q", e.Name)
}
