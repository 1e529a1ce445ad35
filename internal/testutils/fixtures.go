package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"nmapview/internal/config"
)

// SingleHostXML: one Linux host with ssh open.
const SingleHostXML = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE nmaprun>
<?xml-stylesheet href="file:///usr/share/nmap/nmap.xsl" type="text/xsl"?>
<!-- Nmap 7.94 scan initiated as: nmap -O -sV 10.0.0.5 -->
<nmaprun scanner="nmap" args="nmap -O -sV 10.0.0.5" start="1700000000" version="7.94" xmloutputversion="1.05">
  <host starttime="1700000001" endtime="1700000010">
    <status state="up" reason="echo-reply" reason_ttl="64"/>
    <address addr="10.0.0.5" addrtype="ipv4"/>
    <hostnames/>
    <ports>
      <extraports state="closed" count="999"/>
      <port protocol="tcp" portid="22">
        <state state="open" reason="syn-ack" reason_ttl="64"/>
        <service name="ssh" method="table" conf="3"/>
      </port>
    </ports>
    <os>
      <portused state="open" proto="tcp" portid="22"/>
      <osmatch name="Linux" accuracy="100" line="1">
        <osclass type="general purpose" vendor="Linux" osfamily="Linux" osgen="5.X" accuracy="100"/>
      </osmatch>
    </os>
  </host>
  <runstats><finished time="1700000010" elapsed="9.50" exit="success"/><hosts up="1" down="0" total="1"/></runstats>
</nmaprun>`

// MultiHostXML: three hosts. The first has a dual-stack address list with
// the ipv6 entry first and two OS matches; the second has an empty ports
// element; the third is a Windows box with a single port.
const MultiHostXML = `<?xml version="1.0" encoding="UTF-8"?>
<nmaprun scanner="nmap">
  <host>
    <status state="up"/>
    <address addr="fe80::a00:27ff:fe4e:66a1" addrtype="ipv6"/>
    <address addr="192.168.1.10" addrtype="ipv4"/>
    <address addr="08:00:27:4E:66:A1" addrtype="mac" vendor="Oracle VirtualBox virtual NIC"/>
    <ports>
      <port protocol="tcp" portid="80">
        <state state="open" reason="syn-ack"/>
        <service name="http" product="nginx" version="1.25.3"/>
      </port>
      <port protocol="tcp" portid="22">
        <state state="open" reason="syn-ack"/>
        <service name="ssh" product="OpenSSH" version="9.6p1"/>
      </port>
      <port protocol="udp" portid="161">
        <state state="open|filtered" reason="no-response"/>
        <service name="snmp"/>
      </port>
    </ports>
    <os>
      <osmatch name="Linux 5.0 - 5.14" accuracy="98"/>
      <osmatch name="Linux 4.15" accuracy="91"/>
    </os>
  </host>
  <host>
    <status state="up"/>
    <address addr="192.168.1.11" addrtype="ipv4"/>
    <ports/>
  </host>
  <host>
    <status state="up"/>
    <address addr="192.168.1.12" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="49664">
        <state state="open" reason="syn-ack"/>
        <service name="msrpc" product="Microsoft Windows RPC"/>
      </port>
    </ports>
    <os>
      <osmatch name="Microsoft Windows 10" accuracy="96"/>
    </os>
  </host>
</nmaprun>`

// NoRunRootXML is well-formed XML that is not an nmap run.
const NoRunRootXML = `<?xml version="1.0"?><scan><host/></scan>`

// MalformedXML does not decode.
const MalformedXML = `<nmaprun><host><address addr="10.0.0.1" addrtype="ipv4"></host>`

// WriteScanFile writes content into a temporary file and returns its path.
func WriteScanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// GetTestConfig returns a config pointing at scanFile.
func GetTestConfig(scanFile string) *config.Config {
	cfg := config.Default()
	cfg.ScanFile = scanFile
	cfg.MaxUploadBytes = 1 << 20
	return cfg
}
