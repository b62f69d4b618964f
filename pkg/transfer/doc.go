// Package transfer moves PathItems between a home directory and the vault.
//
// Export (ToVault) runs three stages over the item list:
//
//	externalizeLinks → filterExisting → materialize
//
// Symlinks are never copied. Their targets are copied in their place and the
// link itself is recorded in the vault's link index. Import (FromVault)
// checks the vault format, expands items through the link index, recreates
// recorded symlinks and copies the surviving items back under home.
//
// Every stage maps items to Outcomes. An outcome that failed on a required
// item aborts the run; on an optional item it is dropped and logged.
package transfer
