package report

import (
	"bytes"
	"errors"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
)

// Binary layout, equivalent to the schema:
//
//	table TokenStat  { token:string; played:ulong; won:ulong; }
//	table BucketStat { bucket:string; sums:[long]; counts:[ulong]; }
//	table EuchreReport {
//	  run_id:string; seed:ulong; mode:string; ai:string; workers:int;
//	  duration_ms:long; deals:ulong; rounds:ulong; tricks:ulong;
//	  cards_played:ulong; alone_rounds:ulong; marches:ulong; euchres:ulong;
//	  team0_points:ulong; team1_points:ulong;
//	  tokens:[TokenStat]; buckets:[BucketStat];
//	}
//	root_type EuchreReport;
//	file_identifier "EUSR";
//
// Ratios are not stored; they are recomputed from the counts on decode.

// FileIdentifier tags encoded reports
const FileIdentifier = "EUSR"

// ErrNotReport is returned for buffers without the report identifier
var ErrNotReport = errors.New("buffer is not an encoded report")

const (
	reportRunID = iota
	reportSeed
	reportMode
	reportAI
	reportWorkers
	reportDurationMs
	reportDeals
	reportRounds
	reportTricks
	reportCardsPlayed
	reportAloneRounds
	reportMarches
	reportEuchres
	reportTeam0Points
	reportTeam1Points
	reportTokens
	reportBuckets
	reportNumFields
)

const (
	tokenName = iota
	tokenPlayed
	tokenWon
	tokenNumFields
)

const (
	bucketName = iota
	bucketSums
	bucketCounts
	bucketNumFields
)

// EncodeFlatbuffers serializes the report's counts and metadata
func EncodeFlatbuffers(r *Report) []byte {
	builder := flatbuffers.NewBuilder(4096)

	// Child tables, strings and vectors must be built before their parent
	tokenOffsets := make([]flatbuffers.UOffsetT, len(r.Tokens))
	for i, t := range r.Tokens {
		name := builder.CreateString(t.Token)
		builder.StartObject(tokenNumFields)
		builder.PrependUOffsetTSlot(tokenName, name, 0)
		builder.PrependUint64Slot(tokenPlayed, t.Played, 0)
		builder.PrependUint64Slot(tokenWon, t.Won, 0)
		tokenOffsets[i] = builder.EndObject()
	}

	bucketOffsets := make([]flatbuffers.UOffsetT, len(r.Buckets))
	for i, b := range r.Buckets {
		name := builder.CreateString(b.Bucket)

		builder.StartVector(8, len(b.Sums), 8)
		for j := len(b.Sums) - 1; j >= 0; j-- {
			builder.PrependInt64(b.Sums[j])
		}
		sums := builder.EndVector(len(b.Sums))

		builder.StartVector(8, len(b.Counts), 8)
		for j := len(b.Counts) - 1; j >= 0; j-- {
			builder.PrependUint64(b.Counts[j])
		}
		counts := builder.EndVector(len(b.Counts))

		builder.StartObject(bucketNumFields)
		builder.PrependUOffsetTSlot(bucketName, name, 0)
		builder.PrependUOffsetTSlot(bucketSums, sums, 0)
		builder.PrependUOffsetTSlot(bucketCounts, counts, 0)
		bucketOffsets[i] = builder.EndObject()
	}

	tokens := offsetVector(builder, tokenOffsets)
	buckets := offsetVector(builder, bucketOffsets)
	runID := builder.CreateString(r.RunID)
	mode := builder.CreateString(r.Mode)
	ai := builder.CreateString(r.AIType)

	builder.StartObject(reportNumFields)
	builder.PrependUOffsetTSlot(reportRunID, runID, 0)
	builder.PrependUint64Slot(reportSeed, r.Seed, 0)
	builder.PrependUOffsetTSlot(reportMode, mode, 0)
	builder.PrependUOffsetTSlot(reportAI, ai, 0)
	builder.PrependInt32Slot(reportWorkers, int32(r.Workers), 0)
	builder.PrependInt64Slot(reportDurationMs, r.DurationMs, 0)
	builder.PrependUint64Slot(reportDeals, r.Summary.Deals, 0)
	builder.PrependUint64Slot(reportRounds, r.Summary.Rounds, 0)
	builder.PrependUint64Slot(reportTricks, r.Summary.Tricks, 0)
	builder.PrependUint64Slot(reportCardsPlayed, r.Summary.CardsPlayed, 0)
	builder.PrependUint64Slot(reportAloneRounds, r.Summary.AloneRounds, 0)
	builder.PrependUint64Slot(reportMarches, r.Summary.Marches, 0)
	builder.PrependUint64Slot(reportEuchres, r.Summary.Euchres, 0)
	builder.PrependUint64Slot(reportTeam0Points, r.Summary.TeamPoints[0], 0)
	builder.PrependUint64Slot(reportTeam1Points, r.Summary.TeamPoints[1], 0)
	builder.PrependUOffsetTSlot(reportTokens, tokens, 0)
	builder.PrependUOffsetTSlot(reportBuckets, buckets, 0)
	root := builder.EndObject()

	builder.FinishWithFileIdentifier(root, []byte(FileIdentifier))
	return builder.FinishedBytes()
}

// offsetVector writes a vector of table offsets (reverse order, FlatBuffers convention)
func offsetVector(builder *flatbuffers.Builder, offsets []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	builder.StartVector(4, len(offsets), 4)
	for i := len(offsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(offsets[i])
	}
	return builder.EndVector(len(offsets))
}

// DecodeFlatbuffers parses a buffer produced by EncodeFlatbuffers
func DecodeFlatbuffers(buf []byte) (r *Report, err error) {
	if len(buf) < 8 || !bytes.Equal(buf[4:8], []byte(FileIdentifier)) {
		return nil, ErrNotReport
	}
	// The accessors index straight into buf; a truncated buffer panics
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("corrupt report buffer: %v", p)
		}
	}()

	root := flatbuffers.Table{Bytes: buf, Pos: flatbuffers.GetUOffsetT(buf)}
	r = &Report{
		RunID:      tableString(&root, reportRunID),
		Seed:       tableUint64(&root, reportSeed),
		Mode:       tableString(&root, reportMode),
		AIType:     tableString(&root, reportAI),
		Workers:    int(tableInt32(&root, reportWorkers)),
		DurationMs: tableInt64(&root, reportDurationMs),
		Summary: Summary{
			Deals:       tableUint64(&root, reportDeals),
			Rounds:      tableUint64(&root, reportRounds),
			Tricks:      tableUint64(&root, reportTricks),
			CardsPlayed: tableUint64(&root, reportCardsPlayed),
			AloneRounds: tableUint64(&root, reportAloneRounds),
			Marches:     tableUint64(&root, reportMarches),
			Euchres:     tableUint64(&root, reportEuchres),
			TeamPoints: [2]uint64{
				tableUint64(&root, reportTeam0Points),
				tableUint64(&root, reportTeam1Points),
			},
		},
	}

	n := vectorLen(&root, reportTokens)
	r.Tokens = make([]TokenStat, n)
	for i := 0; i < n; i++ {
		t := vectorTable(&root, reportTokens, i)
		r.Tokens[i] = TokenStat{
			Token:  tableString(&t, tokenName),
			Played: tableUint64(&t, tokenPlayed),
			Won:    tableUint64(&t, tokenWon),
		}
	}

	n = vectorLen(&root, reportBuckets)
	r.Buckets = make([]BucketStat, n)
	for i := 0; i < n; i++ {
		t := vectorTable(&root, reportBuckets, i)
		b := BucketStat{Bucket: tableString(&t, bucketName)}

		sumsLen := vectorLen(&t, bucketSums)
		b.Sums = make([]int64, sumsLen)
		if sumsLen > 0 {
			start := t.Vector(fieldOffset(&t, bucketSums))
			for j := range b.Sums {
				b.Sums[j] = t.GetInt64(start + flatbuffers.UOffsetT(j*8))
			}
		}

		countsLen := vectorLen(&t, bucketCounts)
		b.Counts = make([]uint64, countsLen)
		if countsLen > 0 {
			start := t.Vector(fieldOffset(&t, bucketCounts))
			for j := range b.Counts {
				b.Counts[j] = t.GetUint64(start + flatbuffers.UOffsetT(j*8))
			}
		}
		r.Buckets[i] = b
	}

	r.computeRatios()
	return r, nil
}

// fieldOffset returns the field's offset from the table start, or 0 if absent
func fieldOffset(t *flatbuffers.Table, slot int) flatbuffers.UOffsetT {
	return flatbuffers.UOffsetT(t.Offset(flatbuffers.VOffsetT(4 + 2*slot)))
}

func tableString(t *flatbuffers.Table, slot int) string {
	if o := fieldOffset(t, slot); o != 0 {
		return string(t.ByteVector(o + t.Pos))
	}
	return ""
}

func tableUint64(t *flatbuffers.Table, slot int) uint64 {
	if o := fieldOffset(t, slot); o != 0 {
		return t.GetUint64(o + t.Pos)
	}
	return 0
}

func tableInt64(t *flatbuffers.Table, slot int) int64 {
	if o := fieldOffset(t, slot); o != 0 {
		return t.GetInt64(o + t.Pos)
	}
	return 0
}

func tableInt32(t *flatbuffers.Table, slot int) int32 {
	if o := fieldOffset(t, slot); o != 0 {
		return t.GetInt32(o + t.Pos)
	}
	return 0
}

func vectorLen(t *flatbuffers.Table, slot int) int {
	if o := fieldOffset(t, slot); o != 0 {
		return t.VectorLen(o)
	}
	return 0
}

// vectorTable returns element j of a vector of tables
func vectorTable(t *flatbuffers.Table, slot, j int) flatbuffers.Table {
	x := t.Vector(fieldOffset(t, slot))
	x += flatbuffers.UOffsetT(j) * flatbuffers.SizeUOffsetT
	x = t.Indirect(x)
	return flatbuffers.Table{Bytes: t.Bytes, Pos: x}
}
