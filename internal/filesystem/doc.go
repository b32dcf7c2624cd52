// Package filesystem provides the disk probes used when entering a checkout.
package filesystem
