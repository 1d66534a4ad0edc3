// Package workspace owns the on-disk layout of a working root
// (videos/, temp/, data/) and the lock that keeps two runs from sharing it.
package workspace
