// Package diagnostic collects the problems found while reading one YAML
// mapping into an object so they can be reported together.
package diagnostic
