package types

import (
	ierr "github.com/gestia/gestia/internal/errors"
)

// AssetStatus tracks the operational state of a fixed asset
type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "active"
	AssetStatusInRepair AssetStatus = "in_repair"
	AssetStatusRetired  AssetStatus = "retired"
)

func (s AssetStatus) String() string {
	return string(s)
}

func (s AssetStatus) Validate() error {
	switch s {
	case AssetStatusActive, AssetStatusInRepair, AssetStatusRetired:
		return nil
	}
	return ierr.NewError("invalid asset status").
		WithHintf("Asset status '%s' is not supported", s).
		Mark(ierr.ErrValidation)
}

// ClientDocumentType is the identity-document type of a client
type ClientDocumentType string

const (
	ClientDocumentRUC   ClientDocumentType = "ruc"
	ClientDocumentDNI   ClientDocumentType = "dni"
	ClientDocumentOther ClientDocumentType = "other"
)

func (t ClientDocumentType) Validate() error {
	switch t {
	case ClientDocumentRUC, ClientDocumentDNI, ClientDocumentOther:
		return nil
	}
	return ierr.NewError("invalid client document type").
		WithHintf("Client document type '%s' is not supported", t).
		Mark(ierr.ErrValidation)
}
