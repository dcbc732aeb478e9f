package agentsmd

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"aumos-oss/agentsmd/pkg/agentsmd/policy"
)

// Digest returns the hex SHA-256 of the policy's RFC 8785 canonical JSON form.
// Two policies with the same content have the same digest regardless of the
// markdown layout they were parsed from.
func Digest(p *policy.Policy) (string, error) {
	if p == nil {
		return "", fmt.Errorf("cannot digest nil policy")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal policy: %w", err)
	}

	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize policy: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
