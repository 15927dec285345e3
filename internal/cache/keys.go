package cache

import (
	"fmt"
	"strings"
)

const (
	AccessControlListKey = "access_control"
	LibraryEntriesKey    = "library_entries"
)

// MakeKeySafe drops every character outside [A-Za-z0-9].
func MakeKeySafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return -1
	}, s)
}

func AccessControlKey(title string) string {
	return "access_control:" + MakeKeySafe(title)
}

func LibraryEntryKey(id uint) string {
	return fmt.Sprintf("library:%d", id)
}

// SelfLibraryKey keys a user's library narrowed by listing type. The type
// is used verbatim and may be empty.
func SelfLibraryKey(listingType, username string) string {
	return fmt.Sprintf("app_library(%s):%s", listingType, MakeKeySafe(username))
}

// SelfLibraryPattern matches every SelfLibraryKey of username.
func SelfLibraryPattern(username string) string {
	return "app_library(*):" + MakeKeySafe(username)
}
