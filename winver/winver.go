// Package winver defines Windows NTDDI version constants as used in the
// dwWindowsVersion field of Microsoft OS 2.0 descriptors.
//
// Values match the "NTDDI version constants" from sdkddkver.h in Windows SDK
// 10.0.22000.0. The minimum version Windows accepts for an MS OS 2.0
// descriptor set is Windows 8.1 (NTDDI_WINBLUE).
package winver

import "fmt"

// Version is an NTDDI version constant.
type Version uint32

const (
	Win4  Version = 0x04000000
	Win2k Version = 0x05000000

	// Windows 2000 service packs
	Win2kSp1 Version = 0x05000100
	Win2kSp2 Version = 0x05000200
	Win2kSp3 Version = 0x05000300
	Win2kSp4 Version = 0x05000400

	// Windows XP
	WinXp    Version = 0x05010000
	WinXpSp1 Version = 0x05010100
	WinXpSp2 Version = 0x05010200
	WinXpSp3 Version = 0x05010300
	WinXpSp4 Version = 0x05010400

	// Windows Server 2003
	WS03    Version = 0x05020000
	WS03Sp1 Version = 0x05020100
	WS03Sp2 Version = 0x05020200
	WS03Sp3 Version = 0x05020300
	WS03Sp4 Version = 0x05020400

	// Windows Vista
	Win6    Version = 0x06000000
	Win6Sp1 Version = 0x06000100
	Win6Sp2 Version = 0x06000200
	Win6Sp3 Version = 0x06000300
	Win6Sp4 Version = 0x06000400

	// Win7 is Windows 7.
	Win7 Version = 0x06010000
	// Win8 is Windows 8.
	Win8 Version = 0x06020000
	// WinBlue is Windows 8.1.
	WinBlue Version = 0x06030000

	// Windows 10 releases
	Win10     Version = 0x0A000000 // 1507
	Win10Th2  Version = 0x0A000001 // 1511
	Win10Rs1  Version = 0x0A000002 // 1607
	Win10Rs2  Version = 0x0A000003 // 1703
	Win10Rs3  Version = 0x0A000004 // 1709
	Win10Rs4  Version = 0x0A000005 // 1803
	Win10Rs5  Version = 0x0A000006 // 1809
	Win1019h1 Version = 0x0A000007 // 1903
	Win10Vb   Version = 0x0A000008 // 2004
	Win10Mn   Version = 0x0A000009
	Win10Fe   Version = 0x0A00000A
	Win10Co   Version = 0x0A00000B // 21H2
)

// Aliases for versions that share an NTDDI value.
const (
	Vista        = Win6
	Longhorn     = Win6
	WS08         = Win6Sp1
	WinThreshold = Win10
)

// Minimal is the lowest version Windows accepts in MS OS 2.0 descriptors.
const Minimal = WinBlue

// Validate reports whether v can appear in an MS OS 2.0 descriptor set.
func (v Version) Validate() error {
	if v < Minimal {
		return fmt.Errorf("windows version 0x%08X below minimum 0x%08X (Windows 8.1)", uint32(v), uint32(Minimal))
	}
	return nil
}

// Bytes returns the little-endian encoding used for dwWindowsVersion.
func (v Version) Bytes() [4]byte {
	return [4]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
