// Package ytmusic implements a minimal anonymous YouTube Music search
// client over the InnerTube API. Searches prefer the songs shelf and fall
// back to the videos shelf when no song results come back.
package ytmusic
