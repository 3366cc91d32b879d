package engine

// Strategy is the FCM delivery path selected once per process from the
// configured credentials. It applies only to the FCM channel; Expo has
// exactly one path.
type Strategy int

const (
	// StrategySimulated reports every target as sent with a synthetic id
	// and makes no network call. It is the fallback when no credentials
	// are configured and must be loudly observable, never a silent
	// default in production.
	StrategySimulated Strategy = iota
	// StrategyServerKey sends through the legacy HTTP endpoint keyed by a
	// server key header.
	StrategyServerKey
	// StrategyNativeSDK sends through an initialized Firebase admin
	// messaging client.
	StrategyNativeSDK
)

func (s Strategy) String() string {
	switch s {
	case StrategyNativeSDK:
		return "native_sdk"
	case StrategyServerKey:
		return "server_key"
	default:
		return "simulated"
	}
}

// SelectStrategy picks the FCM delivery path from the credential state. The
// native SDK wins over the server key; with neither, delivery degrades to
// simulation.
func SelectStrategy(nativeReady bool, serverKey string) Strategy {
	switch {
	case nativeReady:
		return StrategyNativeSDK
	case serverKey != "":
		return StrategyServerKey
	default:
		return StrategySimulated
	}
}
