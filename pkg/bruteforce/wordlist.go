package bruteforce

// defaultWordlist is the built-in subdomain wordlist used when no custom
// wordlist file is supplied.
func defaultWordlist() []string {
	return []string{
		"www", "mail", "ftp", "localhost", "webmail", "smtp", "pop", "ns1", "webdisk", "ns2",
		"cpanel", "whm", "autodiscover", "autoconfig", "m", "imap", "test", "ns", "blog",
		"pop3", "dev", "www2", "admin", "forum", "news", "vpn", "ns3", "mail2", "new",
		"mysql", "old", "lists", "support", "mobile", "mx", "static", "docs", "beta", "shop",
		"sql", "secure", "demo", "cp", "calendar", "wiki", "web", "media", "email", "images",
		"img", "www1", "intranet", "portal", "video", "sip", "dns2", "api", "cdn", "stats",
		"dns1", "ns4", "www3", "dns", "search", "staging", "server", "mx1", "chat", "wap",
		"my", "svn", "mail1", "sites", "proxy", "ads", "host", "crm", "cms", "backup",
		"mx2", "lyncdiscover", "info", "apps", "download", "remote", "db", "forums", "store",
		"relay", "files", "newsletter", "app", "live", "owa", "en", "start", "sms", "office",
		"exchange", "ipv4", "mail3", "help", "blogs", "helpdesk", "web1", "home", "library",
		"ftp2", "ntp", "monitor", "login", "service", "correo", "www4", "moodle", "it",
		"gateway", "gw", "i", "stat", "stage", "ldap", "tv", "ssl", "web2", "ns5", "upload",
		"nagios", "smtp2", "online", "ad", "survey", "data", "radio", "extranet", "test2",
		"mssql", "dns3", "jobs", "services", "panel", "irc", "hosting", "cloud", "de", "gmail",
		"s", "bbs", "cs", "ww", "mrtg", "review", "ddns", "lab", "r", "analytics", "sandbox",
		"ja", "www5", "postgres", "www6", "rs", "mail4", "travel", "spanish", "secure2", "tv2",
		"ping", "direct", "survey2", "trace", "www7", "ftp1", "files2", "c", "b", "mobile2",
		"facebook", "s2", "s1", "www-dev", "twitter", "devtest", "f", "ecommerce", "social",
		"backup2", "oracle", "sun", "msoid", "share", "v2", "magento", "photos", "redmine",
		"node", "pma", "mt", "zendesk", "sub", "s3", "movie", "secure3", "ps", "training",
		"labs", "linux", "sc", "love", "fax", "php", "lp", "tracking", "thumbs", "up", "tw",
		"campus", "reg", "digital", "demo2", "da", "tr", "otrs", "web3", "home2", "uat", "v",
		"tmall", "union", "noc", "netmail", "beta2", "archive", "s4", "photo", "eb", "video2",
		"web-dev", "v1", "mail5", "ham", "ops", "lab2", "dev2", "img2", "vps", "driver",

		"api", "cdn", "assets", "static", "media", "content", "files", "images", "js", "css",
		"fonts", "uploads", "downloads", "resources", "data", "cache", "tmp", "temp",

		"prod", "production", "staging", "stage", "dev", "development", "test", "testing",
		"qa", "uat", "demo", "sandbox", "preview", "beta", "alpha", "rc", "pre", "preprod",

		"us", "eu", "asia", "uk", "ca", "au", "de", "fr", "es", "it", "jp", "cn", "br",
		"mx", "in", "ru", "nl", "se", "no", "dk", "fi", "pl", "cz", "hu", "ro", "bg",

		"auth", "sso", "oauth", "login", "signin", "signup", "register", "account", "profile",
		"dashboard", "admin", "panel", "control", "manage", "console", "cp", "cpanel",
		"plesk", "whm", "webmin", "phpmyadmin", "pma", "adminer",

		"app", "apps", "application", "service", "services", "microservice", "ms", "ws",
		"webservice", "rest", "graphql", "grpc", "soap",

		"lb", "loadbalancer", "proxy", "reverse-proxy", "gateway", "firewall", "router",
		"switch", "hub", "bridge", "tunnel", "vpn", "bastion", "jump", "relay",

		"monitor", "monitoring", "metrics", "stats", "analytics", "logs", "logging",
		"kibana", "grafana", "prometheus", "nagios", "zabbix", "cacti", "munin",

		"db", "database", "mysql", "postgres", "postgresql", "mongo", "mongodb", "redis",
		"elastic", "elasticsearch", "solr", "cassandra", "neo4j", "influx", "influxdb",

		"ci", "cd", "jenkins", "gitlab", "github", "bitbucket", "bamboo", "teamcity",
		"travis", "circleci", "drone", "concourse", "spinnaker", "argo", "tekton",

		"k8s", "kubernetes", "docker", "registry", "harbor", "quay", "gcr", "ecr",
		"acs", "aks", "eks", "gke", "openshift", "rancher", "nomad", "consul",

		"vault", "secrets", "keystore", "cert", "certificate", "ca", "pki", "acme",
		"security", "sec", "scanner", "scan", "pentest", "audit",

		"backup", "backups", "archive", "storage", "s3", "blob", "object", "file",
		"nfs", "smb", "ftp", "sftp", "rsync", "sync",

		"mail", "email", "smtp", "pop", "pop3", "imap", "webmail", "exchange", "outlook",
		"chat", "slack", "teams", "discord", "irc", "xmpp", "sip", "voip", "pbx",

		"cms", "wordpress", "wp", "drupal", "joomla", "ghost", "hugo", "jekyll",
		"contentful", "strapi", "directus", "craft", "concrete5",

		"shop", "store", "ecommerce", "cart", "checkout", "payment", "pay", "billing",
		"invoice", "magento", "shopify", "woocommerce", "prestashop", "opencart",

		"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p",
		"q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
		"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
		"01", "02", "03", "04", "05", "06", "07", "08", "09", "10",
	}
}
