package ledger

const (
	// instance storage
	kAdmin             byte = 0x01
	kCampaignCount     byte = 0x02
	kTotalDonations    byte = 0x03
	kDisbursementCount byte = 0x04
	kQuorum            byte = 0x05

	// per-campaign storage
	kCampaign              byte = 0x10
	kDonation              byte = 0x11
	kCampaignDisbursements byte = 0x12

	kDisbursement byte = 0x20
	kReceipt      byte = 0x30
)

// packU64LE appends x to dst in little-endian order.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

func instanceKey(prefix byte) string { return string([]byte{prefix}) }

func idKey(prefix byte, id uint64) string {
	buf := make([]byte, 0, 9)
	buf = append(buf, prefix)
	return string(packU64LE(id, buf))
}

func campaignKey(id uint64) string { return idKey(kCampaign, id) }

func campaignDisbursementsKey(id uint64) string { return idKey(kCampaignDisbursements, id) }

func disbursementKey(id uint64) string { return idKey(kDisbursement, id) }

// donationKey orders donations by campaign then sequence.
func donationKey(campaignID, seq uint64) string {
	buf := make([]byte, 0, 17)
	buf = append(buf, kDonation)
	buf = packU64LE(campaignID, buf)
	return string(packU64LE(seq, buf))
}

func receiptKey(txHash string) string {
	buf := make([]byte, 0, 1+len(txHash))
	buf = append(buf, kReceipt)
	return string(append(buf, txHash...))
}
