package extract

import (
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nmapview/models"
)

type m = map[string]interface{}
type l = []interface{}

func port(id, proto, state, service string) m {
	p := m{
		"@portid":   id,
		"@protocol": proto,
		"state":     m{"@state": state},
	}
	if service != "" {
		p["service"] = m{"@name": service}
	}
	return p
}

func host(ip, osName string, ports interface{}) m {
	h := m{
		"address": m{"@addr": ip, "@addrtype": "ipv4"},
		"status":  m{"@state": "up"},
		"ports":   ports,
	}
	if osName != "" {
		h["os"] = m{"osmatch": m{"@name": osName}}
	}
	return h
}

func run(hosts interface{}) m {
	return m{"nmaprun": m{"host": hosts}}
}

func TestExtract_ScenarioSingleHost(t *testing.T) {
	doc := run(host("10.0.0.5", "Linux", m{"port": port("22", "tcp", "open", "ssh")}))
	acc := NewOSPorts()

	records, stats := Extract(doc, acc)

	require.Len(t, records, 1)
	assert.Equal(t, models.HostRecord{
		IP:      "10.0.0.5",
		Port:    "22/tcp",
		Service: "ssh",
		Product: "",
		Version: "",
		State:   "open",
		OS:      "Linux",
	}, records[0])
	assert.Equal(t, map[string][]string{"Linux": {"22/tcp"}}, acc.Map())
	assert.Equal(t, Stats{Hosts: 1, Records: 1}, stats)
}

func TestExtract_MalformedPortsBlockSkipsOnlyThatHost(t *testing.T) {
	doc := run(l{
		host("10.0.0.1", "Linux", "not-a-mapping"),
		host("10.0.0.2", "Windows", m{"port": l{
			port("135", "tcp", "open", "msrpc"),
			port("445", "tcp", "open", "microsoft-ds"),
		}}),
	})
	acc := NewOSPorts()

	records, stats := Extract(doc, acc)

	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "10.0.0.2", r.IP)
	}
	assert.Equal(t, 1, stats.SkippedPortBlocks)
	assert.Equal(t, []string{"Windows"}, keys(acc.Map()))
}

func TestExtract_PrefersIPv4RegardlessOfOrder(t *testing.T) {
	ipv6 := m{"@addr": "fe80::1", "@addrtype": "ipv6"}
	ipv4 := m{"@addr": "192.168.1.10", "@addrtype": "ipv4"}
	mac := m{"@addr": "00:11:22:33:44:55", "@addrtype": "mac"}

	for _, addresses := range []l{{ipv6, ipv4}, {ipv4, ipv6}, {mac, ipv6, ipv4}} {
		h := host("", "", m{"port": port("80", "tcp", "open", "http")})
		h["address"] = addresses
		records, _ := Extract(run(h), NewOSPorts())
		require.Len(t, records, 1)
		assert.Equal(t, "192.168.1.10", records[0].IP)
	}
}

func TestExtract_NoIPv4AddressIsUnknown(t *testing.T) {
	h := host("", "", m{"port": port("80", "tcp", "open", "http")})
	h["address"] = l{
		m{"@addr": "fe80::1", "@addrtype": "ipv6"},
		m{"@addr": "00:11:22:33:44:55", "@addrtype": "mac"},
	}
	records, _ := Extract(run(h), NewOSPorts())
	require.Len(t, records, 1)
	assert.Equal(t, models.Unknown, records[0].IP)

	// a single non-ipv4 mapping is treated like a one-element list
	h["address"] = m{"@addr": "00:11:22:33:44:55", "@addrtype": "mac"}
	records, _ = Extract(run(h), NewOSPorts())
	assert.Equal(t, models.Unknown, records[0].IP)

	delete(h, "address")
	records, _ = Extract(run(h), NewOSPorts())
	assert.Equal(t, models.Unknown, records[0].IP)
}

func TestExtract_EmptyDocument(t *testing.T) {
	acc := NewOSPorts()
	records, stats := Extract(m{"somethingelse": m{}}, acc)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Empty(t, acc.Map())
	assert.Equal(t, Stats{}, stats)

	records, _ = Extract(m{}, acc)
	assert.Empty(t, records)

	// <nmaprun/> decodes to an empty string
	records, _ = Extract(m{"nmaprun": ""}, acc)
	assert.Empty(t, records)
}

func TestExtract_OSMatchVariants(t *testing.T) {
	ports := m{"port": port("22", "tcp", "open", "ssh")}

	list := host("10.0.0.1", "", ports)
	list["os"] = m{"osmatch": l{m{"@name": "Linux 5.4"}, m{"@name": "Linux 4.15"}}}

	single := host("10.0.0.2", "", ports)
	single["os"] = m{"osmatch": m{"@name": "Linux 5.4"}}

	noMatch := host("10.0.0.3", "", ports)
	noMatch["os"] = m{"portused": m{"@state": "open"}}

	noName := host("10.0.0.4", "", ports)
	noName["os"] = m{"osmatch": m{"@accuracy": "90"}}

	emptyList := host("10.0.0.5", "", ports)
	emptyList["os"] = m{"osmatch": l{}}

	badOS := host("10.0.0.6", "", ports)
	badOS["os"] = ""

	records, _ := Extract(run(l{list, single, noMatch, noName, emptyList, badOS}), NewOSPorts())
	require.Len(t, records, 6)

	got := make([]string, 0, len(records))
	for _, r := range records {
		got = append(got, r.OS)
	}
	assert.Equal(t, []string{"Linux 5.4", "Linux 5.4", "Unknown", "Unknown", "Unknown", "Unknown"}, got)
}

func TestExtract_PortDefaults(t *testing.T) {
	ports := l{
		m{},
		m{"@portid": "53", "@protocol": "udp", "state": m{"@state": "open|filtered"}, "service": "junk"},
		m{"@portid": "443", "@protocol": "tcp", "state": m{"@state": "open"},
			"service": m{"@name": "https", "@product": "nginx", "@version": "1.25.3"}},
		m{"@portid": "8080", "@protocol": "tcp", "state": "weird", "service": m{"@product": "Jetty"}},
	}
	records, _ := Extract(run(host("10.0.0.9", "", m{"port": ports})), NewOSPorts())

	require.Len(t, records, 4)
	assert.Equal(t, models.HostRecord{IP: "10.0.0.9", Port: "Unknown/Unknown", Service: "Unknown", State: "Unknown", OS: "Unknown"}, records[0])
	assert.Equal(t, models.HostRecord{IP: "10.0.0.9", Port: "53/udp", Service: "Unknown", State: "open|filtered", OS: "Unknown"}, records[1])
	assert.Equal(t, models.HostRecord{IP: "10.0.0.9", Port: "443/tcp", Service: "https", Product: "nginx", Version: "1.25.3", State: "open", OS: "Unknown"}, records[2])
	assert.Equal(t, models.HostRecord{IP: "10.0.0.9", Port: "8080/tcp", Service: "Unknown", Product: "Jetty", State: "Unknown", OS: "Unknown"}, records[3])
}

func TestExtract_BlankPortTokensBecomeUnknown(t *testing.T) {
	ports := l{
		m{"@portid": "", "@protocol": "", "state": m{"@state": "open"}},
		m{"@portid": "22", "@protocol": " ", "state": m{"@state": "open"}},
		m{"@portid": "", "@protocol": "tcp", "state": m{"@state": "closed"}},
	}
	acc := NewOSPorts()
	records, _ := Extract(run(host("10.0.0.9", "Linux", m{"port": ports})), acc)

	require.Len(t, records, 3)
	assert.Equal(t, "Unknown/Unknown", records[0].Port)
	assert.Equal(t, "22/Unknown", records[1].Port)
	assert.Equal(t, "Unknown/tcp", records[2].Port)
	for _, r := range records {
		id, proto, found := strings.Cut(r.Port, "/")
		assert.True(t, found)
		assert.NotEmpty(t, id)
		assert.NotEmpty(t, proto)
	}
	assert.Equal(t, []string{"Unknown/Unknown", "22/Unknown"}, acc.Map()["Linux"])
}

func TestExtract_SkipsMalformedEntries(t *testing.T) {
	doc := run(l{
		"junk-host",
		host("10.0.0.1", "Linux", m{"port": l{"junk-port", port("22", "tcp", "open", "ssh"), 7}}),
		nil,
		host("10.0.0.2", "Linux", m{"extraports": m{"@state": "closed"}}),
		host("10.0.0.3", "Linux", m{"port": port("80", "tcp", "closed", "http")}),
	})
	acc := NewOSPorts()

	records, stats := Extract(doc, acc)

	require.Len(t, records, 2)
	assert.Equal(t, "22/tcp", records[0].Port)
	assert.Equal(t, "80/tcp", records[1].Port)
	assert.Equal(t, 5, stats.Hosts)
	assert.Equal(t, 2, stats.SkippedHosts)
	assert.Equal(t, 2, stats.SkippedPorts)
	// closed ports are recorded but never reach the OS accumulator
	assert.Equal(t, []string{"22/tcp"}, acc.Map()["Linux"])
}

func TestExtract_DocumentOrderAndCounts(t *testing.T) {
	doc := run(l{
		host("10.0.0.1", "Linux", m{"port": l{port("80", "tcp", "open", "http"), port("22", "tcp", "open", "ssh")}}),
		host("10.0.0.2", "", m{}),
		host("10.0.0.3", "Linux", m{"port": l{port("22", "tcp", "open", "ssh"), port("161", "udp", "open", "snmp"), port("23", "tcp", "filtered", "telnet")}}),
	})
	acc := NewOSPorts()

	records, _ := Extract(doc, acc)

	want := []string{"80/tcp", "22/tcp", "22/tcp", "161/udp", "23/tcp"}
	require.Len(t, records, len(want))
	portPattern := regexp.MustCompile(`^\S+/\S+$`)
	for i, r := range records {
		assert.Equal(t, want[i], r.Port)
		assert.Regexp(t, portPattern, r.Port)
	}
	assert.Equal(t, []string{"80/tcp", "22/tcp", "22/tcp", "161/udp"}, acc.Map()["Linux"])
}

func TestExtract_Idempotent(t *testing.T) {
	doc := run(l{
		host("10.0.0.1", "Linux", m{"port": l{port("80", "tcp", "open", "http"), port("22", "tcp", "open", "ssh")}}),
		host("10.0.0.2", "Windows", m{"port": port("3389", "tcp", "open", "ms-wbt-server")}),
	})

	acc1 := NewOSPorts()
	records1, _ := Extract(doc, acc1)
	acc2 := NewOSPorts()
	records2, _ := Extract(doc, acc2)

	assert.Equal(t, records1, records2)
	assert.Equal(t, acc1.Map(), acc2.Map())
}

func TestExtract_NilAccumulator(t *testing.T) {
	doc := run(host("10.0.0.5", "Linux", m{"port": port("22", "tcp", "open", "ssh")}))
	records, _ := Extract(doc, nil)
	assert.Len(t, records, 1)
}

func TestOSPorts_CopiesOnRead(t *testing.T) {
	acc := NewOSPorts()
	acc.Add("Linux", "22/tcp")
	acc.Add("Linux", "22/tcp")
	acc.Add("Windows", "445/tcp")

	snapshot := acc.Map()
	snapshot["Linux"][0] = "mutated"
	delete(snapshot, "Windows")

	assert.Equal(t, map[string][]string{
		"Linux":   {"22/tcp", "22/tcp"},
		"Windows": {"445/tcp"},
	}, acc.Map())
}

func keys(perOS map[string][]string) []string {
	out := make([]string, 0, len(perOS))
	for name := range perOS {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
