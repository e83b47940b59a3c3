package watchlist

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the watchlist YAML. The raw bytes ride
// along for callers that want to diff or archive the file.
// SSOT 핵심: KnownFields(true)로 오타/미사용 필드 즉시 실패
func Load(path string) (*Config, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read watchlist %s: %w", path, err)
	}

	var list Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&list); err != nil {
		return nil, nil, fmt.Errorf("parse watchlist %s: %w", path, err)
	}

	if err := Validate(&list); err != nil {
		return nil, raw, fmt.Errorf("validate watchlist %s: %w", path, err)
	}

	return &list, raw, nil
}

// Checksum fingerprints the parsed config so runs against the same
// list are recognizable in logs. Canonical JSON, not the raw file:
// 주석/공백 변경은 해시를 바꾸지 않는다.
func (c *Config) Checksum() (string, error) {
	canon, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal watchlist: %w", err)
	}

	digest := sha256.Sum256(canon)
	return hex.EncodeToString(digest[:]), nil
}
