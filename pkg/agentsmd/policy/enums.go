package policy

// AuthenticationMode states whether agents must authenticate.
type AuthenticationMode string

const (
	AuthenticationRequired AuthenticationMode = "required"
	AuthenticationOptional AuthenticationMode = "optional"
	AuthenticationNone     AuthenticationMode = "none"
)

// AuthenticationModes lists the accepted values in documentation order.
var AuthenticationModes = []AuthenticationMode{
	AuthenticationRequired,
	AuthenticationOptional,
	AuthenticationNone,
}

// IsValid reports whether m is one of AuthenticationModes.
func (m AuthenticationMode) IsValid() bool {
	for _, v := range AuthenticationModes {
		if m == v {
			return true
		}
	}
	return false
}

// PersonalDataCollection describes how much personal data the site collects.
type PersonalDataCollection string

const (
	CollectionNone      PersonalDataCollection = "none"
	CollectionMinimal   PersonalDataCollection = "minimal"
	CollectionStandard  PersonalDataCollection = "standard"
	CollectionExtensive PersonalDataCollection = "extensive"
)

// PersonalDataCollections lists the accepted values in documentation order.
var PersonalDataCollections = []PersonalDataCollection{
	CollectionNone,
	CollectionMinimal,
	CollectionStandard,
	CollectionExtensive,
}

// IsValid reports whether c is one of PersonalDataCollections.
func (c PersonalDataCollection) IsValid() bool {
	for _, v := range PersonalDataCollections {
		if c == v {
			return true
		}
	}
	return false
}

// DataRetention describes how long collected data is kept.
type DataRetention string

const (
	RetentionNone        DataRetention = "none"
	RetentionSessionOnly DataRetention = "session-only"
	Retention30Days      DataRetention = "30-days"
	Retention1Year       DataRetention = "1-year"
	RetentionIndefinite  DataRetention = "indefinite"
)

// DataRetentions lists the accepted values in documentation order.
var DataRetentions = []DataRetention{
	RetentionNone,
	RetentionSessionOnly,
	Retention30Days,
	Retention1Year,
	RetentionIndefinite,
}

// IsValid reports whether r is one of DataRetentions.
func (r DataRetention) IsValid() bool {
	for _, v := range DataRetentions {
		if r == v {
			return true
		}
	}
	return false
}

// ThirdPartySharing describes whether collected data leaves the site.
type ThirdPartySharing string

const (
	SharingNone         ThirdPartySharing = "none"
	SharingAnonymized   ThirdPartySharing = "anonymized"
	SharingWithConsent  ThirdPartySharing = "with-consent"
	SharingUnrestricted ThirdPartySharing = "unrestricted"
)

// ThirdPartySharings lists the accepted values in documentation order.
var ThirdPartySharings = []ThirdPartySharing{
	SharingNone,
	SharingAnonymized,
	SharingWithConsent,
	SharingUnrestricted,
}

// IsValid reports whether s is one of ThirdPartySharings.
func (s ThirdPartySharing) IsValid() bool {
	for _, v := range ThirdPartySharings {
		if s == v {
			return true
		}
	}
	return false
}

// Strings converts a list of string-typed enum values to plain strings.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
