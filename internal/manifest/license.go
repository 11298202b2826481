package manifest

// approvedLicenses is the fixed SPDX allow-list a package manifest's
// license field is checked against, carried over from the OSI-approved
// license set the original tool offers during its interactive wizard.
var approvedLicenses = map[string]bool{
	"AFL-1.1": true, "AFL-1.2": true, "AFL-2.0": true, "AFL-2.1": true,
	"AFL-3.0": true, "APL-1.0": true, "Apache-1.1": true, "Apache-2.0": true,
	"APSL-1.0": true, "APSL-1.1": true, "APSL-1.2": true, "APSL-2.0": true,
	"Artistic-1.0": true, "Artistic-1.0-Perl": true, "Artistic-1.0-cl8": true,
	"Artistic-2.0": true, "AAL": true, "BSL-1.0": true, "BSD-2-Clause": true,
	"BSD-3-Clause": true, "0BSD": true, "CECILL-2.1": true, "CNRI-Python": true,
	"CDDL-1.0": true, "CPAL-1.0": true, "CPL-1.0": true, "CATOSL-1.1": true,
	"CUA-OPL-1.0": true, "EPL-1.0": true, "ECL-1.0": true, "ECL-2.0": true,
	"EFL-1.0": true, "EFL-2.0": true, "Entessa": true, "EUDatagrid": true,
	"EUPL-1.1": true, "Fair": true, "Frameworx-1.0": true, "AGPL-3.0": true,
	"GPL-2.0": true, "GPL-3.0": true, "LGPL-2.1": true, "LGPL-3.0": true,
	"LGPL-2.0": true, "HPND": true, "IPL-1.0": true, "Intel": true, "IPA": true,
	"ISC": true, "LPPL-1.3c": true, "LiLiQ-P-1.1": true, "LiLiQ-Rplus-1.1": true,
	"LiLiQ-R-1.1": true, "LPL-1.02": true, "LPL-1.0": true, "MS-PL": true,
	"MS-RL": true, "MirOS": true, "MIT": true, "Motosoto": true, "MPL-1.0": true,
	"MPL-1.1": true, "MPL-2.0": true, "MPL-2.0-no-copyleft-exception": true,
	"Multics": true, "NASA-1.3": true, "Naumen": true, "NGPL": true, "Nokia": true,
	"NPOSL-3.0": true, "NTP": true, "OCLC-2.0": true, "OGTSL": true,
	"OSL-1.0": true, "OSL-2.0": true, "OSL-2.1": true, "OSL-3.0": true,
	"OSET-PL-2.1": true, "PHP-3.0": true, "PostgreSQL": true, "Python-2.0": true,
	"QPL-1.0": true, "RPSL-1.0": true, "RPL-1.1": true, "RPL-1.5": true,
	"RSCPL": true, "OFL-1.1": true, "SimPL-2.0": true, "Sleepycat": true,
	"SISSL": true, "SPL-1.0": true, "Watcom-1.0": true, "UPL-1.0": true,
	"NCSA": true, "VSL-1.0": true, "W3C": true, "Xnet": true, "Zlib": true,
	"ZPL-2.0": true,
}

// IsApprovedLicense reports whether id is one of the fixed SPDX
// identifiers a package manifest's license field may take.
func IsApprovedLicense(id string) bool {
	return approvedLicenses[id]
}
