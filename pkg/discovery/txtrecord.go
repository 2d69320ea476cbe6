package discovery

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeBoardTXT creates the TXT records for a board.
func EncodeBoardTXT(info *BoardInfo) TXTRecordMap {
	path := info.Path
	if path == "" {
		path = DefaultPath
	}
	return TXTRecordMap{
		TXTKeyVersion: Version,
		TXTKeyPath:    path,
	}
}

// DecodeBoardTXT returns the board path from TXT records.
func DecodeBoardTXT(txt TXTRecordMap) (string, error) {
	ver, ok := txt[TXTKeyVersion]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}
	if ver != Version {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedVersion, ver)
	}

	path := txt[TXTKeyPath]
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	keys := make([]string, 0, len(txt))
	for k := range txt {
		keys = append(keys, k)
	}
	// map order is random; keep announcements stable
	slices.Sort(keys)

	result := make([]string, 0, len(txt))
	for _, k := range keys {
		result = append(result, k+"="+txt[k])
	}
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidInstanceName)
	}
	if len(name) > MaxInstanceNameLen {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidInstanceName, MaxInstanceNameLen)
	}
	return nil
}

func httpURL(host string, port uint16, path string) string {
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, strconv.Itoa(int(port))),
		Path:   path,
	}
	return u.String()
}
