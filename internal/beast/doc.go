// Package beast provides the foundational fragment types for critter.
//
// This package contains value objects that each know how to render
// themselves as a single BEAST2 XML fragment. All other internal packages
// import beast; beast imports nothing internal. This keeps the fragment
// layer free of circular dependencies.
//
// Key design constraints:
//   - Rendering is a pure function of the value object's fields
//   - Float values render with a decimal point preserved ("2.0", never "2")
//   - Infinite bounds render as the BEAST tokens "-Infinity"/"Infinity"
package beast
