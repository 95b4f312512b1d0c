// Package platform supplies the coordinate defaults (BOM, build plugin,
// extension group) that generated descriptors reference. A descriptor is a
// flat, read-only lookup of dotted keys to string values, loaded from YAML
// and validated against an embedded JSON schema.
package platform
