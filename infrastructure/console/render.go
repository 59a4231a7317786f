package console

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"world-sync/domain"
	"world-sync/friendrequest"
	"world-sync/inventory"
	"world-sync/projection"
	"world-sync/repositories"
	"world-sync/runtime/workers"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const timeLayout = "15:04:05"

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// Trade prints both sides of the current offer, one row per furniture group.
func Trade(out io.Writer, session domain.TradeSession) {
	if !session.Active() {
		_, _ = fmt.Fprintf(out, "trade: %s\n", session.State)
		return
	}
	_, _ = fmt.Fprintf(out, "trade: %s (v%d)\n", session.State, session.Version)
	table := newTable(out, "Side", "Name", "Accepts", "Group", "Count")
	for _, side := range []struct {
		label string
		p     *domain.TradeParticipant
	}{{"own", session.Own}, {"other", session.Other}} {
		if len(side.p.Items) == 0 {
			table.Append([]string{side.label, side.p.DisplayName, strconv.FormatBool(side.p.Accepts), "-", "0"})
			continue
		}
		for _, id := range domain.SortedGroupIDs(side.p.Items) {
			table.Append([]string{
				side.label,
				side.p.DisplayName,
				strconv.FormatBool(side.p.Accepts),
				string(id),
				strconv.Itoa(side.p.Items[id].Count()),
			})
		}
	}
	table.Render()
}

func Inventory(out io.Writer, groups []inventory.Group) {
	table := newTable(out, "Group", "Items", "Available")
	for _, group := range groups {
		table.Append([]string{string(group.ID), strconv.Itoa(len(group.Items)), strconv.Itoa(group.Available())})
	}
	table.Render()
}

// Threads marks the active thread with a star.
func Threads(out io.Writer, threads []domain.MessengerThread, active domain.ThreadID) {
	table := newTable(out, "", "Thread", "Friend", "Unread", "Last")
	for _, thread := range threads {
		marker := ""
		if thread.ID == active {
			marker = "*"
		}
		last := ""
		if n := len(thread.Messages); n > 0 {
			last = thread.Messages[n-1].Text
		}
		table.Append([]string{
			marker,
			strconv.Itoa(int(thread.ID)),
			thread.Participant.Name,
			strconv.Itoa(thread.UnreadCount),
			last,
		})
	}
	table.Render()
}

func Requests(out io.Writer, bubbles []friendrequest.Bubble) {
	table := newTable(out, "Room index", "Requester", "Name")
	for _, bubble := range bubbles {
		table.Append([]string{
			strconv.Itoa(bubble.RoomIndex),
			strconv.Itoa(int(bubble.Request.RequesterID)),
			bubble.Request.RequesterName,
		})
	}
	table.Render()
}

func Hits(out io.Writer, hits []repositories.Hit) {
	table := newTable(out, "Sender", "Kind", "Score", "Text")
	for _, hit := range hits {
		table.Append([]string{
			strconv.Itoa(int(hit.SenderID)),
			string(hit.Kind),
			fmt.Sprintf("%.2f", hit.Score),
			hit.Text,
		})
	}
	table.Render()
}

func Journal(out io.Writer, entries []repositories.Entry) {
	table := newTable(out, "Seq", "Time", "Type", "Payload")
	for _, entry := range entries {
		table.Append([]string{
			strconv.FormatUint(entry.Seq, 10),
			entry.At.Format(timeLayout),
			entry.Envelope.Type,
			string(entry.Envelope.Payload),
		})
	}
	table.Render()
}

func Timeline(out io.Writer, activities []projection.Activity) {
	table := newTable(out, "Time", "Topic", "Activity")
	for _, activity := range activities {
		table.Append([]string{activity.At.Format(timeLayout), string(activity.Topic), activity.Summary})
	}
	table.Render()
}

func Health(out io.Writer, sample workers.HealthSample) {
	_, _ = fmt.Fprintf(out, "health at %s: cpu %.1f%% mem %.1f%% goroutines %d\n",
		sample.At.Format(timeLayout), sample.CPUPercent, sample.MemoryPercent, sample.Goroutines)
}

func Channels(out io.Writer, samples []workers.ChannelCapacity) {
	table := newTable(out, "Channel", "Length", "Capacity")
	for _, sample := range samples {
		table.Append([]string{sample.Name, strconv.Itoa(sample.Length), strconv.Itoa(sample.Capacity)})
	}
	table.Render()
}

// Counts lists event types by name.
func Counts(out io.Writer, counts map[string]uint64) {
	table := newTable(out, "Event", "Count")
	names := lo.Keys(counts)
	slices.Sort(names)
	for _, name := range names {
		table.Append([]string{name, strconv.FormatUint(counts[name], 10)})
	}
	table.Render()
}
