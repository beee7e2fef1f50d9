package hypixel

import (
	"fmt"
	"net/url"
)

// EndpointKind is the closed set of endpoint shapes the parameter rules
// know about. Everything outside the known set is KindGeneric, which
// passes configured parameters through verbatim.
type EndpointKind int

const (
	// KindPlayer is the "player" endpoint: identified by name or uuid.
	KindPlayer EndpointKind = iota

	// KindSkyblockProfiles is "skyblock/profiles": requires an account uuid.
	KindSkyblockProfiles

	// KindSkyblockProfile is "skyblock/profile": requires a profile id.
	KindSkyblockProfile

	// KindGeneric is any other endpoint: configured params pass through.
	KindGeneric
)

// ClassifyEndpoint maps an endpoint path to its [EndpointKind].
func ClassifyEndpoint(endpoint string) EndpointKind {
	switch endpoint {
	case "player":
		return KindPlayer
	case "skyblock/profiles":
		return KindSkyblockProfiles
	case "skyblock/profile":
		return KindSkyblockProfile
	default:
		return KindGeneric
	}
}

// ParamError reports an endpoint whose required setting is absent. It is a
// misconfiguration, fatal before polling starts, never retried.
type ParamError struct {
	// Endpoint is the endpoint path that was being configured.
	Endpoint string

	// Missing names the absent setting.
	Missing string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("endpoint %q requires %s, which is not configured", e.Endpoint, e.Missing)
}

// Identity carries the identifier settings available for parameter
// construction. UUID is the resolved account uuid when identity resolution
// has run, or the directly configured one.
type Identity struct {
	Username  string
	UUID      string
	ProfileID string
}

// BuildParams constructs the request parameters for one endpoint.
//
// The rules are endpoint-specific and evaluated once, before the polling
// loop; parameters are stable across the run. The API key is not part of
// the result; [Client.Fetch] injects it on every request.
//
//   - player: name if the username is known, else uuid if known, else
//     empty (the API will reject it remotely, which is not a local error)
//   - skyblock/profiles: uuid is required
//   - skyblock/profile: a profile id is required
//   - anything else: extra is copied verbatim
//
// A missing required setting returns a [*ParamError].
func BuildParams(endpoint string, id Identity, extra map[string]string) (url.Values, error) {
	params := url.Values{}

	switch ClassifyEndpoint(endpoint) {
	case KindPlayer:
		if id.Username != "" {
			params.Set("name", id.Username)
		} else if id.UUID != "" {
			params.Set("uuid", id.UUID)
		}

	case KindSkyblockProfiles:
		if id.UUID == "" {
			return nil, &ParamError{Endpoint: endpoint, Missing: "a uuid (profile owner)"}
		}
		params.Set("uuid", id.UUID)

	case KindSkyblockProfile:
		if id.ProfileID == "" {
			return nil, &ParamError{Endpoint: endpoint, Missing: "a profile id"}
		}
		params.Set("profile", id.ProfileID)

	case KindGeneric:
		for k, v := range extra {
			params.Set(k, v)
		}
	}

	return params, nil
}
