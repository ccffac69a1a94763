// Package files finds and stores the spreadsheet exports the dashboard
// reads.
//
// Discovery lists input files in a directory, newest first:
//
//	discovery := files.NewDiscovery(paths.InputDir)
//	inputs, err := discovery.FindInputFiles(".")
//
// Manager stores uploads under a sanitized name with an allowed extension:
//
//	m := files.NewManager(paths.InputDir, files.ManagerOptions{MaxBytes: 16 << 20})
//	path, err := m.Save(header.Filename, part)
package files
