// Package domain contains entity without logic, just meta-data
package domain
