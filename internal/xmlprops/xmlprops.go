// Package xmlprops reads and edits Hadoop XML property-map configuration
// files (core-site.xml, hdfs-site.xml, yarn-site.xml, ...).
package xmlprops

import (
	"encoding/xml"
	"fmt"
	"os"
	"sort"
)

// Configuration is a Hadoop XML configuration document.
type Configuration struct {
	XMLName    xml.Name   `xml:"configuration"`
	Properties []Property `xml:"property"`
}

// Property is one name/value pair in a configuration document.
type Property struct {
	Name        string `xml:"name"`
	Value       string `xml:"value"`
	Description string `xml:"description,omitempty"`
}

// Parse decodes a configuration document.
func Parse(data []byte) (*Configuration, error) {
	var c Configuration
	if err := xml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse configuration XML: %w", err)
	}
	return &c, nil
}

// Load reads and parses a configuration file.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Get returns the value of the named property, or "" when absent.
func (c *Configuration) Get(name string) string {
	for _, p := range c.Properties {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// Has reports whether the named property exists.
func (c *Configuration) Has(name string) bool {
	for _, p := range c.Properties {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Set updates the named property, appending it when new.
func (c *Configuration) Set(name, value string) {
	for i, p := range c.Properties {
		if p.Name == name {
			c.Properties[i].Value = value
			return
		}
	}
	c.Properties = append(c.Properties, Property{Name: name, Value: value})
}

// Delete removes the named property. It reports whether the property
// existed.
func (c *Configuration) Delete(name string) bool {
	for i, p := range c.Properties {
		if p.Name == name {
			c.Properties = append(c.Properties[:i], c.Properties[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns all property names, sorted.
func (c *Configuration) Names() []string {
	names := make([]string, 0, len(c.Properties))
	for _, p := range c.Properties {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Render serializes the document with the standard XML header and 4-space
// indentation.
func (c *Configuration) Render() ([]byte, error) {
	data, err := xml.MarshalIndent(c, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration XML: %w", err)
	}
	return []byte(xml.Header + string(data) + "\n"), nil
}

// WriteTo writes the rendered document to path.
func (c *Configuration) WriteTo(path string) error {
	data, err := c.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}

// Edit loads path, hands the document to fn for mutation, and writes it
// back. The file is not locked during the edit.
func Edit(path string, fn func(*Configuration)) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	fn(c)
	return c.WriteTo(path)
}
