package export

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// LinkExport encodes s into a sharable link: the settings are converted to a
// protobuf Struct, marshaled deterministically, zlib-compressed and placed
// base64-encoded in the URL fragment.
//
// Precondition: baseURL should end with "/"; one is added otherwise.
// Postcondition: Returns "<baseURL><spec>/#<payload>", or a non-nil error.
func LinkExport(baseURL string, s Settings) (string, error) {
	payload, err := encodeSettings(s)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + s.Player.Spec + "/#" + payload, nil
}

func encodeSettings(s Settings) (string, error) {
	doc, err := toDocument(s)
	if err != nil {
		return "", err
	}
	st, err := structpb.NewStruct(doc)
	if err != nil {
		return "", fmt.Errorf("export: building settings struct: %w", err)
	}
	raw, err := proto.MarshalOptions{Deterministic: true}.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("export: marshaling settings: %w", err)
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("export: compressing settings: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("export: compressing settings: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// toDocument converts s to the generic map form accepted by structpb.
func toDocument(s Settings) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("export: encoding settings: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("export: decoding settings: %w", err)
	}
	return doc, nil
}

// DecodeLink reverses LinkExport and returns the settings document as a generic map.
//
// Postcondition: Returns the decoded document, or a non-nil error if link has no
// fragment or the payload is corrupt.
func DecodeLink(link string) (map[string]any, error) {
	_, fragment, ok := strings.Cut(link, "#")
	if !ok || fragment == "" {
		return nil, fmt.Errorf("export: link has no settings fragment")
	}
	compressed, err := base64.StdEncoding.DecodeString(fragment)
	if err != nil {
		return nil, fmt.Errorf("export: decoding link payload: %w", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("export: decompressing link payload: %w", err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("export: decompressing link payload: %w", err)
	}
	var st structpb.Struct
	if err := proto.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("export: unmarshaling link payload: %w", err)
	}
	return st.AsMap(), nil
}
