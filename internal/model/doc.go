// Package model defines shared data types for the FTX stream mirror.
//
// Conventions:
//   - Prices and sizes: float64, exactly as delivered on the wire
//   - Exchange timestamps: float64 seconds since Unix epoch (FTX convention)
//   - Trade and order IDs: int64 (FTX numeric IDs)
package model
