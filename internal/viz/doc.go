// Package viz renders scene trees and live muscle state for the
// terminal.
package viz
