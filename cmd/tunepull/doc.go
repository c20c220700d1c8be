// Command tunepull matches a CSV music library export against YouTube Music
// and downloads the confident matches into a local audio library.
package main
